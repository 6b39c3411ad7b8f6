package store

import (
	"errors"
	"time"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// ErrSubscriptionNotFound is returned when no push subscription exists for an endpoint.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Observation is one status reading for a watched tracking number.
type Observation struct {
	TrackingNumber string
	Status         string
	ObservedAt     time.Time
}

// StatusChange is a tracking number whose status moved since the last poll.
type StatusChange struct {
	TrackingNumber string
	From           string
	To             string
}

// Flash is a one-shot banner carried across a redirect.
type Flash struct {
	Kind    string
	Message string
}
