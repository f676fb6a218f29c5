package parsing

import "fmt"

// DocumentError reports a document whose structure could not be read.
// No partial result accompanies it.
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document error: %s", e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
