package wasmhost

import (
	"testing"

	"github.com/coreos/go-semver/semver"
	"github.com/wippyai/evds-bridge/boundary"
)

func TestABICompatible(t *testing.T) {
	tests := []struct {
		host, guest string
		want        bool
	}{
		{"1.0.0", "1.0.0", true},
		{"1.2.0", "1.0.0", true},
		{"1.2.3", "1.2.3", true},
		{"1.0.0", "1.1.0", false},
		{"1.2.0", "1.2.1", false},
		{"2.0.0", "1.0.0", false},
		{"1.0.0", "2.0.0", false},
	}
	for _, tt := range tests {
		got := abiCompatible(semver.New(tt.host), semver.New(tt.guest))
		if got != tt.want {
			t.Errorf("abiCompatible(%s, %s) = %v, want %v", tt.host, tt.guest, got, tt.want)
		}
	}
}

func TestHostVersionParses(t *testing.T) {
	if hostVersion.Major != 1 {
		t.Errorf("host ABI major = %d, want 1", hostVersion.Major)
	}
}

func TestReadPackedString(t *testing.T) {
	heap := boundary.NewHeap(64)
	in, err := heap.Place("1.0.0")
	if err != nil {
		t.Fatal(err)
	}

	packed := uint64(in.Ptr)<<32 | uint64(in.Len)
	got, err := readPackedString(heap, packed)
	if err != nil {
		t.Fatalf("readPackedString: %v", err)
	}
	if got != "1.0.0" {
		t.Errorf("readPackedString = %q, want %q", got, "1.0.0")
	}
}

func TestReadPackedStringEmpty(t *testing.T) {
	heap := boundary.NewHeap(64)
	if _, err := readPackedString(heap, 0); err == nil {
		t.Fatal("expected error for empty descriptor")
	}
}

func TestReadPackedStringOutOfBounds(t *testing.T) {
	heap := boundary.NewHeap(64)
	packed := uint64(1000)<<32 | uint64(10)
	if _, err := readPackedString(heap, packed); err == nil {
		t.Fatal("expected error for descriptor past memory end")
	}
}
