package ollama

import "fmt"

// BackendError reports that the backend could not be reached or answered
// with a protocol-level failure while listing models.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("ollama %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// PullError reports a failed download attempt for a specific model.
type PullError struct {
	Model string
	Err   error
}

func (e *PullError) Error() string {
	return fmt.Sprintf("pull %q: %v", e.Model, e.Err)
}

func (e *PullError) Unwrap() error { return e.Err }

// InferenceError reports a failed chat completion.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("chat with %q: %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
