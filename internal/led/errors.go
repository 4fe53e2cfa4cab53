package led

import "fmt"

// Error codes
const (
	ErrCodeUnknownSequence = "UNKNOWN_SEQUENCE"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeLineBusy        = "LINE_BUSY"
)

// Error represents a domain-specific LED error.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrUnknownSequence = &Error{Code: ErrCodeUnknownSequence}
	ErrInvalidArgument = &Error{Code: ErrCodeInvalidArgument}
	ErrLineBusy        = &Error{Code: ErrCodeLineBusy}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on the error code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new LED error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func unknownSequence(name string) *Error {
	return NewError(ErrCodeUnknownSequence, fmt.Sprintf("led manager has no sequence named %q", name), nil)
}
