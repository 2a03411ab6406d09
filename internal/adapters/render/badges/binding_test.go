package badges

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bnema/ludoteca-cli/internal/application"
	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
	"github.com/bnema/ludoteca-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type lookupMap map[string]domain.ReservationStatus

func (m lookupMap) Lookup(title string) domain.ReservationStatus {
	return m[domain.NormalizeItemKey(title)]
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		status   domain.ReservationStatus
		wantText string
		wantHTML string
	}{
		{status: domain.StatusRequested, wantText: "📌 Requested", wantHTML: `<span class="badge badge-pending">📌 Requested</span>`},
		{status: domain.StatusApproved, wantText: "✅ Reserved", wantHTML: `<span class="badge badge-available">✅ Reserved</span>`},
		{status: domain.StatusNone, wantText: "", wantHTML: ""},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			badge := BadgeFor(tt.status)
			assert.Equal(t, tt.wantText, badge.Text)
			assert.Equal(t, tt.wantHTML, badge.HTML())
		})
	}
}

func TestBindDisablesExactlyRequestedAndApproved(t *testing.T) {
	lookup := lookupMap{
		"catan": domain.StatusRequested,
		"azul":  domain.StatusApproved,
		"dixit": domain.ParseReservationStatus("Annullata"),
	}

	states := Bind(lookup, []Affordance{
		{Action: ActionRequest, ItemTitle: "Catan", BadgeTarget: "b1"},
		{Action: ActionRequest, ItemTitle: "Azul", BadgeTarget: "b2"},
		{Action: ActionRequest, ItemTitle: "Dixit", BadgeTarget: "b3"},
		{Action: ActionRequest, ItemTitle: "Unknown", BadgeTarget: "b4"},
	})
	require.Len(t, states, 4)

	assert.True(t, states[0].Disabled)
	assert.Equal(t, OpacityBlocked, states[0].Opacity)
	assert.Equal(t, CursorBlocked, states[0].Cursor)
	assert.Equal(t, TonePending, states[0].Badge.Tone)

	assert.True(t, states[1].Disabled)
	assert.Equal(t, ToneAvailable, states[1].Badge.Tone)

	for _, state := range states[2:] {
		assert.False(t, state.Disabled)
		assert.Equal(t, OpacityEnabled, state.Opacity)
		assert.Equal(t, CursorEnabled, state.Cursor)
		assert.True(t, state.Badge.Empty())
	}
}

func TestBindLeavesOtherAffordancesUntouched(t *testing.T) {
	states := Bind(lookupMap{"catan": domain.StatusApproved}, []Affordance{
		{Action: "share", ItemTitle: "Catan", BadgeTarget: "b1"},
	})
	require.Len(t, states, 1)

	assert.False(t, states[0].Bound)
	assert.False(t, states[0].Disabled)
	assert.True(t, states[0].Badge.Empty())
	assert.Zero(t, states[0].Opacity)
}

func TestBindWithoutBadgeTargetStillDisables(t *testing.T) {
	states := Bind(lookupMap{"catan": domain.StatusRequested}, []Affordance{
		{Action: ActionRequest, ItemTitle: "Catan"},
	})

	assert.True(t, states[0].Disabled)
	assert.True(t, states[0].Badge.Empty())
}

func TestBindIsRederivable(t *testing.T) {
	lookup := lookupMap{"catan": domain.StatusRequested}
	affordances := []Affordance{{Action: ActionRequest, ItemTitle: "Catan", BadgeTarget: "b"}}

	assert.Equal(t, Bind(lookup, affordances), Bind(lookup, affordances))

	lookup["catan"] = domain.StatusNone
	assert.False(t, Bind(lookup, affordances)[0].Disabled)
}

func TestRefreshedCacheDrivesBinding(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	cache := application.NewReservationCache(transport, ports.SystemClock{}, nil)

	transport.EXPECT().Call(mock.Anything, application.ActionReservationsStatus, map[string]string{"titoli": "Catan"}).
		Return(json.RawMessage(`{"ok":true,"map":{"catan":"Inviata"}}`), nil)

	require.NoError(t, cache.Refresh(context.Background(), []string{"Catan"}))
	assert.Equal(t, "Inviata", cache.Lookup("Catan").Wire())

	states := Bind(cache, AffordancesFor([]domain.Item{{Title: "Catan"}}))
	require.Len(t, states, 1)
	assert.True(t, states[0].Disabled)
	assert.Equal(t, "📌 Requested", states[0].Badge.Text)
}

func TestAffordancesForItems(t *testing.T) {
	affordances := AffordancesFor([]domain.Item{
		{Title: "Ticket to Ride: Europe"},
		{Title: "7 Wonders"},
	})

	assert.Equal(t, []Affordance{
		{Action: ActionRequest, ItemTitle: "Ticket to Ride: Europe", BadgeTarget: "badge-ticket-to-ride-europe"},
		{Action: ActionRequest, ItemTitle: "7 Wonders", BadgeTarget: "badge-7-wonders"},
	}, affordances)
}
