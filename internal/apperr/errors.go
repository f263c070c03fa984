package apperr

import "fmt"

// ExternalServiceError wraps any failure from a managed external service
// (completion, embedding, retrieval, speech). The chatbot treats all of
// them the same way: the session is reset and locked until the user
// explicitly resets it again.
type ExternalServiceError struct {
	Service string // "completion", "embedding", "retrieval", "speech"
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// UnsupportedConfigError signals an invalid session-level configuration,
// e.g. an embedding dimension outside the supported set.
type UnsupportedConfigError struct {
	Field string
	Value string
}

func (e *UnsupportedConfigError) Error() string {
	return fmt.Sprintf("unsupported configuration: %s=%q", e.Field, e.Value)
}

// MalformedOutputError signals that the completion service returned
// something that does not satisfy the requested structured contract.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

func External(service string, err error) error {
	return &ExternalServiceError{Service: service, Err: err}
}
