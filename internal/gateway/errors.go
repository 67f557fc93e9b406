package gateway

import "errors"

// Kind classifies gateway failures so callers can branch without string matching.
type Kind int

const (
	// KindLocalValidation flags input rejected before any network call.
	KindLocalValidation Kind = iota + 1
	// KindAuthExpired flags a 401: the credential was cleared and the in-flight
	// call must not be retried.
	KindAuthExpired
	// KindBackendRejected flags any other non-2xx response with a backend message.
	KindBackendRejected
	// KindTransport flags network or payload decoding failures.
	KindTransport
)

// Error is the uniform failure value produced at the gateway boundary.
// Message is human-readable and safe to surface verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationErr(message string) *Error {
	return &Error{Kind: KindLocalValidation, Message: message}
}

func transportErr(message string) *Error {
	return &Error{Kind: KindTransport, Message: message}
}

// KindOf extracts the failure kind from err, or 0 for non-gateway errors.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return 0
}
