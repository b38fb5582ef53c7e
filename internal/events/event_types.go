package events

import (
	"slices"
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountLoggedIn      EventType = "account_logged_in"
	EventLoginFailed          EventType = "login_failed"
	EventAccountLoggedOut     EventType = "account_logged_out"
	EventAccessTokenRefreshed EventType = "access_token_refreshed"
	EventRefreshTokenRejected EventType = "refresh_token_rejected"
	EventAccountRegistered    EventType = "account_registered"
	EventPasswordChanged      EventType = "password_changed"
)

// AllAuthEvents lists every session event type.
var AllAuthEvents = []EventType{
	EventAccountLoggedIn,
	EventLoginFailed,
	EventAccountLoggedOut,
	EventAccessTokenRefreshed,
	EventRefreshTokenRejected,
	EventAccountRegistered,
	EventPasswordChanged,
}

// Known reports whether t is one of AllAuthEvents.
func (t EventType) Known() bool {
	return slices.Contains(AllAuthEvents, t)
}

// Event represents a session transition emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	AccountID string    `json:"account_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// RefreshRejectedPayload explains why a refresh attempt failed.
type RefreshRejectedPayload struct {
	Reason string `json:"reason"`
}

// LoggedInPayload summarizes the session a login opened.
type LoggedInPayload struct {
	RoleName        string `json:"role_name"`
	PermissionCount int    `json:"permission_count"`
}
