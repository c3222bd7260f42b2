package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a request that failed input validation.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness clash with stored data.
	ErrConflict = errors.New("conflict")
	// ErrUnprocessable indicates a well-formed request referencing data that does not exist.
	ErrUnprocessable = errors.New("unprocessable")
)

// Error couples one of the sentinel kinds above with a message that is safe
// to return to API clients.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

// NewError builds an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// UserSafeMessage returns the client-facing message carried by err, or a
// generic one when err is not a domain error.
func UserSafeMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return "Internal server error"
}
