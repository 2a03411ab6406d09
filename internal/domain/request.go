package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TitleDelimiter separates titles in a reservations_status query.
const TitleDelimiter = "|"

type ReservationRequest struct {
	ItemTitle      string
	PlayerCount    int
	RequesterName  string
	RequesterPhone string
	Note           string
}

func (r ReservationRequest) Validate() error {
	title := strings.TrimSpace(r.ItemTitle)
	if title == "" {
		return fmt.Errorf("%w: item title is required", ErrInvalidRequest)
	}
	if strings.Contains(title, TitleDelimiter) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, ErrInvalidItemTitle, title)
	}
	if r.PlayerCount < 0 {
		return fmt.Errorf("%w: player count must not be negative", ErrInvalidRequest)
	}

	return nil
}

// Params returns the submit_request wire fields, without the token.
func (r ReservationRequest) Params() map[string]string {
	players := ""
	if r.PlayerCount > 0 {
		players = strconv.Itoa(r.PlayerCount)
	}

	return map[string]string{
		"titolo":    strings.TrimSpace(r.ItemTitle),
		"giocatori": players,
		"nome":      r.RequesterName,
		"telefono":  r.RequesterPhone,
		"note":      r.Note,
	}
}

// Acknowledgement is the backend payload of an accepted submission.
type Acknowledgement map[string]any
