package jsonp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRetriesNameCollisions(t *testing.T) {
	names := []string{"cb_a", "cb_a", "cb_b"}
	r := newRegistry()
	r.newName = func() string {
		name := names[0]
		names = names[1:]
		return name
	}

	first := r.register()
	second := r.register()

	assert.Equal(t, "cb_a", first.name)
	assert.Equal(t, "cb_b", second.name)
	assert.Equal(t, 2, r.pending())
}

func TestBindingCleanupRunsOnce(t *testing.T) {
	r := newRegistry()
	hooks := 0
	r.onCleanup = func(string) { hooks++ }

	b := r.register()
	closed := 0
	b.own(func() { closed++ })

	b.cleanup()
	b.cleanup()

	assert.Equal(t, 1, closed)
	assert.Equal(t, 1, hooks)
	assert.Zero(t, r.pending())
}

func TestBindingOwnAfterCleanupReleasesImmediately(t *testing.T) {
	b := newRegistry().register()
	b.cleanup()

	closed := false
	b.own(func() { closed = true })
	assert.True(t, closed)
}

func TestDispatchDeliversOnlyOnce(t *testing.T) {
	r := newRegistry()
	b := r.register()

	require.True(t, r.dispatch(b.name, json.RawMessage(`1`)))
	assert.False(t, r.dispatch(b.name, json.RawMessage(`2`)))
	assert.JSONEq(t, `1`, string(<-b.result))

	b.cleanup()
	assert.False(t, r.dispatch(b.name, json.RawMessage(`3`)))
}

func TestRandomCallbackNameIsIdentifier(t *testing.T) {
	name := randomCallbackName()
	assert.True(t, isIdentifier(name))
	assert.NotContains(t, name, "-")
}
