package ai

import "fmt"

// APICallError reports a failed model call. Callers keep the original text.
type APICallError struct {
	Task    string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ai %s: %s: %v", e.Task, e.Message, e.Cause)
	}
	return fmt.Sprintf("ai %s: %s", e.Task, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
