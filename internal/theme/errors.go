package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoadError represents a theme file that exists but cannot be read or parsed.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("theme load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("theme load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError lists the theme fields that failed validation.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(e.Cause, &fieldErrs) {
		return fmt.Sprintf("invalid theme: %v", e.Cause)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return "invalid theme: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
