package deviceflow

import (
	"fmt"
	"time"
)

// DeviceAuthorization is the result of the device authorization request
// per RFC 8628 section 3.2. It lives for exactly one attempt.
type DeviceAuthorization struct {
	DeviceCode string

	// VerificationURL is verification_uri_complete when the upstream sends
	// it, so the user does not have to type the user code
	VerificationURL string

	// PollingInterval is always positive
	PollingInterval time.Duration
}

// TokenPair is the outcome of a successful flow
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// EventKind tags a progress event
type EventKind int

const (
	// EventPrompt carries the verification URL. Always the first event.
	EventPrompt EventKind = iota + 1

	// EventWaiting reports that the user has not completed authorization yet
	EventWaiting

	// EventSuccess carries the issued tokens. Always the last event.
	EventSuccess
)

func (k EventKind) String() string {
	switch k {
	case EventPrompt:
		return "prompt"
	case EventWaiting:
		return "waiting"
	case EventSuccess:
		return "success"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one step of the device flow as seen by the caller
type Event struct {
	Kind            EventKind
	VerificationURL string    // set for EventPrompt
	Tokens          TokenPair // set for EventSuccess
}

// Message renders the human-readable progress line for the event
func (e Event) Message() string {
	switch e.Kind {
	case EventPrompt:
		return fmt.Sprintf("Go to %s to complete login", e.VerificationURL)
	case EventWaiting:
		return "Waiting for response..."
	case EventSuccess:
		return "Success"
	default:
		return ""
	}
}
