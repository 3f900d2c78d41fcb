package evdsbridge

import "context"

// Memory represents a foreign address space the bridge can read from and
// write to. Offsets and lengths are authoritative; implementations must
// bounds-check every access and never scan for terminator bytes.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// Allocator allocates buffers inside a foreign address space.
//
// A pointer obtained from Alloc must be released through the Free of the same
// Allocator. Pairing alloc and free across different allocators is undefined
// behavior.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	Free(ptr, size uint32)
}

// Response is the raw outcome of one HTTP round trip.
type Response struct {
	Status int
	Body   []byte
}

// Transport performs a single blocking GET against the remote service.
// Implementations decide timeout and retry policy; the core attempts no
// recovery of its own and maps any returned error to a network failure.
type Transport interface {
	Get(ctx context.Context, url string) (*Response, error)
}
