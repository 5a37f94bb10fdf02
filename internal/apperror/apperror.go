package apperror

import "fmt"

// Kind classifies an operation failure. Validation and duplicate failures are
// returned to the caller inside the result envelope; sync failures indicate
// financial state was already partially applied and must be logged distinctly.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDuplicate  Kind = "duplicate"
	KindNotFound   Kind = "not_found"
	KindEditWindow Kind = "edit_window_expired"
	KindSync       Kind = "sync"
)

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Newf(kind Kind, code, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches identifying data the caller needs to act on the error,
// such as the prior batch id on a duplicate import.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

func Wrap(err error, kind Kind, code, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}
