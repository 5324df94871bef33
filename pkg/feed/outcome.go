package feed

import (
	"errors"

	"creationity/pkg/api"
)

// Result reports a user-initiated action back to the screen. Failures are
// values, not errors: Message is ready to show as-is.
type Result struct {
	OK      bool
	Message string
}

// messageFor maps a client error to the message a screen should display.
// Server-provided messages pass through for expected failures; transport
// and server faults get generic wording.
func messageFor(err error) string {
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ae *api.AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	var nf *api.NotFoundError
	if errors.As(err, &nf) {
		return nf.Message
	}
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		return "Could not reach the server. Check your connection and try again."
	}
	return "Something went wrong. Please try again."
}
