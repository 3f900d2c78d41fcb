package boundary

import (
	"github.com/wippyai/evds-bridge/errors"
)

// Result is the owned triple returned from every operation. When Code is
// CodeNoError, Ptr references exactly Len bytes of valid UTF-8 response
// text. On failure Ptr is either 0 or a short diagnostic message. Either
// way the buffer belongs to the bridge's allocator and must go back through
// Release exactly once.
type Result struct {
	Ptr  uint32
	Len  uint32
	Code errors.Code
}

// IsError reports whether r carries an error code. Convenience predicate
// mirroring the foreign surface's is_error operation.
func IsError(r Result) bool {
	return r.Code != errors.CodeNoError
}

// emit copies body into a freshly allocated foreign buffer and hands
// ownership to the caller.
func (s *Service) emit(body string) Result {
	return s.place(body, errors.CodeNoError)
}

// fail produces an error result whose payload is the diagnostic message.
// If even the diagnostic cannot be placed, the result degrades to a null
// pointer with the original code preserved.
func (s *Service) fail(err error) Result {
	return s.place(errors.MessageOf(err), errors.CodeOf(err))
}

func (s *Service) place(text string, code errors.Code) Result {
	if len(text) == 0 {
		return Result{Code: code}
	}
	size := uint32(len(text))

	ptr, err := s.alloc.Alloc(size)
	if err != nil || ptr == 0 {
		if code == errors.CodeNoError {
			code = errors.CodeAllocation
		}
		return Result{Code: code}
	}
	if err := s.mem.Write(ptr, []byte(text)); err != nil {
		s.alloc.Free(ptr, size)
		if code == errors.CodeNoError {
			code = errors.CodeAllocation
		}
		return Result{Code: code}
	}
	return Result{Ptr: ptr, Len: size, Code: code}
}

// Release returns a result buffer to the allocator that produced it. A null
// pointer is a safe no-op, so callers may release every result they receive
// regardless of its code. Releasing the same non-null result twice is a
// caller contract violation.
func (s *Service) Release(r Result) {
	if r.Ptr == 0 {
		return
	}
	s.alloc.Free(r.Ptr, r.Len)
}
