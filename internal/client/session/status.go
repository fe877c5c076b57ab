package session

import "github.com/dmitrijs2005/codemonk/internal/client/models"

// Status is the authentication lifecycle state.
type Status int

const (
	// StatusUnknown is the initial state while the probe is in flight.
	StatusUnknown Status = iota
	StatusUnauthenticated
	// StatusLoggingIn is the transient sub-state of an unauthenticated store
	// while a Login call is in flight.
	StatusLoggingIn
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusLoggingIn:
		return "logging-in"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	Status    Status
	User      *models.User
	LastError string
}

// Loading reports whether a login is in flight.
func (s Snapshot) Loading() bool {
	return s.Status == StatusLoggingIn
}
