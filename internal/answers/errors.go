package answers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadySet is returned when a field is assigned a second time.
var ErrAlreadySet = errors.New("field already set")

// ValidationError reports operator input that cannot be accepted.
// Prompt loops treat it as a request to ask again.
type ValidationError struct {
	Field  Field
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// IncompleteError lists the fields still unset when Build is called.
type IncompleteError struct {
	Missing []Field
}

func (e *IncompleteError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return "configuration incomplete, missing: " + strings.Join(names, ", ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
