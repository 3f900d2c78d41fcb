package boundary

import (
	"errors"
	"testing"

	bridgeerrors "github.com/wippyai/evds-bridge/errors"
)

func TestReadInput(t *testing.T) {
	h := NewHeap(1024)
	valid, _ := h.Place("TP.DK.USD.S")

	raw, _ := h.Alloc(2)
	h.Write(raw, []byte{0xc3, 0x28}) // broken two-byte sequence

	tests := []struct {
		name     string
		in       Input
		want     string
		wantKind bridgeerrors.Kind
	}{
		{"valid", valid, "TP.DK.USD.S", ""},
		{"zero length", Input{Ptr: valid.Ptr}, "", bridgeerrors.KindEmptyParameter},
		{"null with zero length", Input{}, "", bridgeerrors.KindEmptyParameter},
		{"out of bounds", Input{Ptr: 4096, Len: 64}, "", bridgeerrors.KindOutOfBounds},
		{"invalid utf8", Input{Ptr: raw, Len: 2}, "", bridgeerrors.KindInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadInput(h, tt.in, "series")
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ReadInput() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("ReadInput() = %q, want %q", got, tt.want)
				}
				return
			}
			var e *bridgeerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("ReadInput() error = %v, want structured", err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Param != "series" {
				t.Errorf("param = %q, want series", e.Param)
			}
		})
	}
}

// ReadInput must honor the descriptor length exactly: no terminator
// scanning, no reading past Len.
func TestReadInputLengthIsAuthoritative(t *testing.T) {
	h := NewHeap(1024)
	full, _ := h.Place("bie_yssk\x00trailing garbage")

	got, err := ReadInput(h, Input{Ptr: full.Ptr, Len: 8}, "code")
	if err != nil {
		t.Fatal(err)
	}
	if got != "bie_yssk" {
		t.Errorf("ReadInput = %q, want first 8 bytes only", got)
	}
}
