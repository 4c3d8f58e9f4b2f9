package client

import "fmt"

// Kind classifies a failed submission.
type Kind string

const (
	// KindRejected is a 4xx from the endpoint, usually a validation failure.
	KindRejected Kind = "rejected"
	// KindServer is a 5xx or an unusable success response.
	KindServer Kind = "server"
	// KindConnection is a transport failure; no response was received.
	KindConnection Kind = "connection"
)

// SubmitError describes why the endpoint did not accept a donation.
type SubmitError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("client: %s: %v", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("client: %s (status %d): %s", e.Kind, e.Status, e.Message)
	default:
		return fmt.Sprintf("client: %s (status %d)", e.Kind, e.Status)
	}
}

func (e *SubmitError) Unwrap() error { return e.Err }
