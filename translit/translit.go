package translit

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/evds-bridge/errors"
)

// Placeholder replaces each undecodable byte sequence in transliteration
// mode, one per decode error. Three characters wide so it stands out in
// tabular output.
const Placeholder = " * "

// turkish maps the Turkish letters that appear in EVDS metadata to their
// closest ASCII equivalents.
var turkish = map[rune]byte{
	'Ç': 'C', 'ç': 'c',
	'Ğ': 'G', 'ğ': 'g',
	'İ': 'I', 'ı': 'i',
	'Ö': 'O', 'ö': 'o',
	'Ş': 'S', 'ş': 's',
	'Ü': 'U', 'ü': 'u',
}

// Decode converts raw response bytes to a string, requiring them to already
// be valid UTF-8.
func Decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errors.InvalidUTF8(errors.PhaseEncode, "body", raw)
	}
	return string(raw), nil
}

// ToASCII converts raw response bytes to pure ASCII text. It never fails:
// every undecodable sequence becomes its own Placeholder, Turkish letters
// map to their ASCII equivalents and any other non-ASCII rune becomes '*'.
func ToASCII(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString(Placeholder)
			i++
			continue
		}
		i += size

		if r < utf8.RuneSelf {
			b.WriteByte(byte(r))
			continue
		}
		if ascii, ok := turkish[r]; ok {
			b.WriteByte(ascii)
			continue
		}
		b.WriteByte('*')
	}

	return b.String()
}
