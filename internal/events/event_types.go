package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventLoggedIn           EventType = "logged_in"
	EventRegistered         EventType = "registered"
	EventLoggedOut          EventType = "logged_out"
	EventSessionInvalidated EventType = "session_invalidated"
)

// Event is emitted by the auth service when a visitor session changes.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, userID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginPayload describes a successful login or registration.
type LoginPayload struct {
	Role string `json:"role"`
}

// InvalidationPayload says why a stored token was discarded.
type InvalidationPayload struct {
	Reason string `json:"reason"`
}

// Invalidation reasons.
const (
	ReasonMalformedToken = "malformed_token"
	ReasonTokenExpired   = "token_expired"
	ReasonRejected       = "rejected_by_backend"
)
