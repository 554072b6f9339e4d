package domain

import "time"

const (
	// PublicFeedLimit caps the number of entries returned by the public feed.
	PublicFeedLimit = 20
	// MaxMessageLength bounds a single log message, in characters.
	MaxMessageLength = 2000
)

// LogEntry is a mission log written by a pilot. Message is immutable once
// stored and IsPublic only ever moves from false to true.
//
// JSON field names match the payloads the web client already consumes.
type LogEntry struct {
	ID       string    `json:"_id"`
	Username string    `json:"username"`
	Message  string    `json:"message"`
	IsPublic bool      `json:"isPublic"`
	Date     time.Time `json:"date"`
}
