package telemetry

import "github.com/google/uuid"

// NewSessionID returns a random id tagging every row of one session.
func NewSessionID() string {
	return uuid.New().String()
}
