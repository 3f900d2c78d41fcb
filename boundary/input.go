package boundary

import (
	"unicode/utf8"

	evdsbridge "github.com/wippyai/evds-bridge"
	"github.com/wippyai/evds-bridge/errors"
)

// Input is a non-owning view into caller memory: a pointer/length pair valid
// only for the duration of the call that receives it. Length is
// authoritative; the bridge never scans for terminator bytes and never
// retains the view past the call.
type Input struct {
	Ptr uint32
	Len uint32
}

// ReadInput converts an untrusted descriptor into an owned, validated
// string. It reads exactly in.Len bytes, requires them to be valid UTF-8 and
// rejects zero-length descriptors, since every Input parameter of the six
// operations is required.
func ReadInput(mem evdsbridge.Memory, in Input, name string) (string, error) {
	if in.Len == 0 {
		return "", errors.EmptyParameter(errors.PhaseBoundary, name)
	}
	data, err := mem.Read(in.Ptr, in.Len)
	if err != nil {
		return "", errors.OutOfBounds(name, in.Ptr, in.Len)
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseBoundary, name, data)
	}
	// string(data) copies; the foreign bytes are not referenced afterwards
	return string(data), nil
}
