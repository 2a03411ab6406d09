package domain

import (
	"fmt"
	"strings"
)

// ReservationStatus is the backend-assigned state of an item. The wire
// strings are Italian and only appear at the transport boundary.
type ReservationStatus int

const (
	StatusNone ReservationStatus = iota
	StatusRequested
	StatusApproved
)

const (
	wireRequested = "Inviata"
	wireApproved  = "Approvata"
)

// ParseReservationStatus maps a backend status string onto the closed
// set. Only the exact wire strings count; anything else, other casings
// included, is StatusNone and never blocks a request.
func ParseReservationStatus(wire string) ReservationStatus {
	switch wire {
	case wireRequested:
		return StatusRequested
	case wireApproved:
		return StatusApproved
	default:
		return StatusNone
	}
}

func (s ReservationStatus) Wire() string {
	switch s {
	case StatusRequested:
		return wireRequested
	case StatusApproved:
		return wireApproved
	default:
		return ""
	}
}

func (s ReservationStatus) String() string {
	switch s {
	case StatusRequested:
		return "requested"
	case StatusApproved:
		return "approved"
	default:
		return "none"
	}
}

func (s ReservationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ReservationStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*s = StatusNone
	case "requested":
		*s = StatusRequested
	case "approved":
		*s = StatusApproved
	default:
		return fmt.Errorf("unknown reservation status %q", text)
	}
	return nil
}

// Blocks reports whether a new request for the item must be refused.
func (s ReservationStatus) Blocks() bool {
	return s == StatusRequested || s == StatusApproved
}

// NormalizeItemKey is the cache key for an item title. Display casing
// never reaches a lookup.
func NormalizeItemKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
