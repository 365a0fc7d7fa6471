package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound indicates no prompt template is stored for the
	// requested purpose. Fatal for the request, never retried.
	ErrTemplateNotFound = errors.New("prompt template not found")

	// ErrMalformedEnvelope indicates the completion response did not contain
	// the expected choices[0].message.content path.
	ErrMalformedEnvelope = errors.New("malformed completion envelope")

	// ErrMalformedPayload indicates the message content was not valid JSON
	// after fence stripping.
	ErrMalformedPayload = errors.New("malformed completion payload")
)

// MissingFieldError reports a judgment payload field that was absent or of the
// wrong type.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("completion payload missing required field %q", e.Field)
}

// TransportError wraps network or HTTP-level failures reaching the model
// endpoint. Status is zero when the request never got a response.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion request failed: %v", e.Err)
	}
	return fmt.Sprintf("completion request returned status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }
