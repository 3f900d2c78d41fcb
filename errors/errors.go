package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // parameter validation
	PhaseBuild    Phase = "build"    // request construction
	PhaseFetch    Phase = "fetch"    // network round trip
	PhaseEncode   Phase = "encode"   // response body decoding
	PhaseBoundary Phase = "boundary" // descriptor marshaling
)

// Kind categorizes the error
type Kind string

const (
	KindEmptyParameter Kind = "empty_parameter"
	KindInvalidDate    Kind = "invalid_date"
	KindInvalidEnum    Kind = "invalid_enum"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindInvalidInput   Kind = "invalid_input"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindNetwork        Kind = "network"
	KindUpstreamStatus Kind = "upstream_status"
	KindAllocation     Kind = "allocation"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Param  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Param != "" {
		b.WriteString(" at ")
		b.WriteString(e.Param)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Message returns the short diagnostic text carried back across the boundary
// in a failed result's payload.
func (e *Error) Message() string {
	if e.Detail != "" {
		return "Error: " + e.Detail
	}
	return "Error: " + strings.ReplaceAll(string(e.Kind), "_", " ")
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Param names the offending parameter
func (b *Builder) Param(name string) *Builder {
	b.err.Param = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// EmptyParameter creates an empty required parameter error
func EmptyParameter(phase Phase, param string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEmptyParameter,
		Param:  param,
		Detail: fmt.Sprintf("required parameter %q is empty", param),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, param string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Param:  param,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidDate creates a malformed or impossible date error
func InvalidDate(date string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidDate,
		Param:  "date",
		Detail: fmt.Sprintf("invalid date %q, expected DD-MM-YYYY or DD-MM-YYYY,DD-MM-YYYY", date),
		Value:  date,
	}
}

// InvalidEnum creates an out-of-range enum value error
func InvalidEnum(param string, value any, enumType string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidEnum,
		Param:  param,
		Detail: fmt.Sprintf("invalid enum value %v for %s", value, enumType),
		Value:  value,
	}
}

// OutOfBounds creates an out of bounds descriptor error
func OutOfBounds(param string, offset, length uint32) *Error {
	return &Error{
		Phase:  PhaseBoundary,
		Kind:   KindOutOfBounds,
		Param:  param,
		Detail: fmt.Sprintf("descriptor (ptr=%d, len=%d) outside foreign memory", offset, length),
	}
}

// Network wraps a transport failure
func Network(cause error) *Error {
	return &Error{
		Phase:  PhaseFetch,
		Kind:   KindNetwork,
		Detail: "request failed, check the internet connection and the url",
		Cause:  cause,
	}
}

// UpstreamStatus creates a non-2xx upstream response error
func UpstreamStatus(status int) *Error {
	return &Error{
		Phase:  PhaseFetch,
		Kind:   KindUpstreamStatus,
		Detail: fmt.Sprintf("upstream service returned status %d", status),
		Value:  status,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(size uint32) *Error {
	return &Error{
		Phase:  PhaseBoundary,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
