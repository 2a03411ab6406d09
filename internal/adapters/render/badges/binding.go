// Package badges derives request affordance state and badge markup from
// cached reservation statuses. Binding is pure: it reads the lookup and
// never touches the network or storage.
package badges

import (
	"html"
	"strings"

	"github.com/bnema/ludoteca-cli/internal/domain"
)

type Action string

const ActionRequest Action = "request"

const (
	OpacityBlocked = 0.55
	OpacityEnabled = 1.0

	CursorBlocked = "not-allowed"
	CursorEnabled = "pointer"
)

// Affordance is one UI control tagged with an item title and, optionally,
// the target its badge renders into.
type Affordance struct {
	Action      Action
	ItemTitle   string
	BadgeTarget string
}

type Tone int

const (
	ToneNone Tone = iota
	TonePending
	ToneAvailable
)

func (t Tone) class() string {
	switch t {
	case TonePending:
		return "badge-pending"
	case ToneAvailable:
		return "badge-available"
	default:
		return ""
	}
}

type Badge struct {
	Text string
	Tone Tone
}

func BadgeFor(status domain.ReservationStatus) Badge {
	switch status {
	case domain.StatusRequested:
		return Badge{Text: "📌 Requested", Tone: TonePending}
	case domain.StatusApproved:
		return Badge{Text: "✅ Reserved", Tone: ToneAvailable}
	default:
		return Badge{}
	}
}

func (b Badge) Empty() bool {
	return b.Text == ""
}

// HTML renders the badge as a span; an empty badge renders as "".
func (b Badge) HTML() string {
	if b.Empty() {
		return ""
	}
	return `<span class="badge ` + b.Tone.class() + `">` + html.EscapeString(b.Text) + `</span>`
}

// State is the visual state of one affordance. Bound is false for
// affordances the binding leaves untouched.
type State struct {
	Affordance Affordance
	Bound      bool
	Status     domain.ReservationStatus
	Badge      Badge
	Disabled   bool
	Opacity    float64
	Cursor     string
}

type StatusLookup interface {
	Lookup(title string) domain.ReservationStatus
}

func Bind(lookup StatusLookup, affordances []Affordance) []State {
	states := make([]State, 0, len(affordances))
	for _, affordance := range affordances {
		states = append(states, bindOne(lookup, affordance))
	}
	return states
}

func bindOne(lookup StatusLookup, affordance Affordance) State {
	if affordance.Action != ActionRequest {
		return State{Affordance: affordance}
	}

	status := domain.StatusNone
	if title := strings.TrimSpace(affordance.ItemTitle); title != "" {
		status = lookup.Lookup(title)
	}

	state := State{
		Affordance: affordance,
		Bound:      true,
		Status:     status,
		Badge:      BadgeFor(status),
		Disabled:   status.Blocks(),
		Opacity:    OpacityEnabled,
		Cursor:     CursorEnabled,
	}
	if state.Disabled {
		state.Opacity = OpacityBlocked
		state.Cursor = CursorBlocked
	}
	if affordance.BadgeTarget == "" {
		state.Badge = Badge{}
	}

	return state
}

// AffordancesFor builds one request affordance per tracked item.
func AffordancesFor(items []domain.Item) []Affordance {
	affordances := make([]Affordance, 0, len(items))
	for _, item := range items {
		affordances = append(affordances, Affordance{
			Action:      ActionRequest,
			ItemTitle:   item.Title,
			BadgeTarget: "badge-" + badgeSlug(item.Key()),
		})
	}
	return affordances
}

func badgeSlug(key string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
