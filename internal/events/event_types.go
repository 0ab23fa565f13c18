package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventTokensGranted  EventType = "tokens_granted"
	EventTokensSpent    EventType = "tokens_spent"
	EventTokensCredited EventType = "tokens_credited"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username        string `json:"username"`
	Premium         bool   `json:"premium"`
	StartingBalance int    `json:"starting_balance"`
}

// LedgerChangePayload payload for grant, spend and credit events.
type LedgerChangePayload struct {
	Amount int `json:"amount"`
}
