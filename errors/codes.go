package errors

import stderrors "errors"

// Code is the error kind crossing the foreign-call boundary.
//
// The numeric values are part of the published ABI: once assigned they are
// never reordered or removed, and new codes are only ever appended. Foreign
// callers compile against these integers.
type Code int32

const (
	CodeNoError        Code = 0
	CodeInvalidInput   Code = 1
	CodeInvalidDate    Code = 2
	CodeInvalidEnum    Code = 3
	CodeInvalidUTF8    Code = 4
	CodeNetwork        Code = 5
	CodeUpstreamStatus Code = 6
	CodeAllocation     Code = 7
)

// String returns the stable name of the code.
func (c Code) String() string {
	switch c {
	case CodeNoError:
		return "no_error"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeInvalidDate:
		return "invalid_date"
	case CodeInvalidEnum:
		return "invalid_enum_value"
	case CodeInvalidUTF8:
		return "utf8_decode_error"
	case CodeNetwork:
		return "network_error"
	case CodeUpstreamStatus:
		return "upstream_status_error"
	case CodeAllocation:
		return "allocation_failure"
	}
	return "unknown"
}

// kindCodes maps structured kinds onto boundary codes. Several kinds collapse
// into CodeInvalidInput: the boundary taxonomy is deliberately coarser than
// the internal one.
var kindCodes = map[Kind]Code{
	KindEmptyParameter: CodeInvalidInput,
	KindInvalidInput:   CodeInvalidInput,
	KindOutOfBounds:    CodeInvalidInput,
	KindInvalidDate:    CodeInvalidDate,
	KindInvalidEnum:    CodeInvalidEnum,
	KindInvalidUTF8:    CodeInvalidUTF8,
	KindNetwork:        CodeNetwork,
	KindUpstreamStatus: CodeUpstreamStatus,
	KindAllocation:     CodeAllocation,
}

// CodeOf is a total mapping from any error to exactly one boundary code.
// nil maps to CodeNoError. Errors that did not originate in this library are
// treated as network failures: by the time an unstructured error can surface,
// validation has already passed and the only remaining collaborator is the
// transport.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNoError
	}
	var e *Error
	if stderrors.As(err, &e) {
		if code, ok := kindCodes[e.Kind]; ok {
			return code
		}
	}
	return CodeNetwork
}

// MessageOf returns the diagnostic text for err, suitable for the payload of
// a failed boundary result.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Message()
	}
	return "Error: " + err.Error()
}
