package symbols

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected registration.
type ErrorKind uint8

const (
	InvalidName ErrorKind = iota + 1
	KeywordConflict
	DuplicateFunction
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidName:
		return "invalid name"
	case KeywordConflict:
		return "keyword conflict"
	case DuplicateFunction:
		return "duplicate function"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidName matches errors for signatures built without a name.
	ErrInvalidName = errors.New("invalid function name")
	// ErrKeywordConflict matches errors for user functions named after a keyword.
	ErrKeywordConflict = errors.New("function name is a reserved keyword")
	// ErrDuplicateFunction matches errors for signatures that already exist.
	ErrDuplicateFunction = errors.New("duplicate function")
)

// RegistrationError reports why a signature was not constructed or stored.
// The table or registry involved is left exactly as it was.
type RegistrationError struct {
	Kind ErrorKind
	// Name is the function name involved (empty for InvalidName).
	Name string
	// Detail is the detail string of the rejected signature, when one exists.
	Detail string
}

func (e *RegistrationError) Error() string {
	switch e.Kind {
	case InvalidName:
		return ErrInvalidName.Error()
	case KeywordConflict:
		return fmt.Sprintf("%s: %q", ErrKeywordConflict, e.Name)
	case DuplicateFunction:
		return fmt.Sprintf("%s: %s", ErrDuplicateFunction, e.Detail)
	default:
		return fmt.Sprintf("registration failed: %s", e.Detail)
	}
}

// Unwrap exposes the sentinel for errors.Is.
func (e *RegistrationError) Unwrap() error {
	switch e.Kind {
	case InvalidName:
		return ErrInvalidName
	case KeywordConflict:
		return ErrKeywordConflict
	case DuplicateFunction:
		return ErrDuplicateFunction
	default:
		return nil
	}
}

func duplicateError(sig *FunctionSignature) error {
	return &RegistrationError{Kind: DuplicateFunction, Name: sig.Name(), Detail: sig.DetailString()}
}
