package client

import (
	"fmt"

	"companyfetch/pkg/model"
)

// Kind classifies a per-identifier failure.
type Kind string

const (
	// KindTransport represents DNS/connection/timeout failures.
	KindTransport Kind = "transport"

	// KindHTTPStatus represents non-2xx responses.
	KindHTTPStatus Kind = "http_status"

	// KindDecode represents malformed or unexpected response payloads.
	KindDecode Kind = "decode"

	// KindUnexpected represents anything uncategorized, including
	// recovered panics.
	KindUnexpected Kind = "unexpected"
)

// FetchError describes why one identifier failed. Every kind is recoverable
// at the item level: it terminates that identifier only and is recorded in
// the outcome sequence, never escalated to abort a batch or the run.
type FetchError struct {
	ID         model.ID
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s error (status %d): %s",
			e.ID, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch %s: %s error: %s", e.ID, e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Outcome is the tagged per-identifier result: exactly one of Record or Err
// is set. Consumers handle both arms; there is no third state.
type Outcome struct {
	ID     model.ID
	Record *model.Company
	Err    *FetchError
}

// Success reports whether the outcome carries a record.
func (o Outcome) Success() bool {
	return o.Err == nil
}

// Failure builds a failed outcome for an identifier.
func Failure(id model.ID, kind Kind, message string, err error) Outcome {
	return Outcome{
		ID: id,
		Err: &FetchError{
			ID:      id,
			Kind:    kind,
			Message: message,
			Err:     err,
		},
	}
}
