package jsonp

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const callbackPrefix = "cb_"

// binding is one in-flight call: its callback name, the slot the remote
// script fills, and the resources the call owns.
type binding struct {
	name     string
	result   chan json.RawMessage
	registry *registry

	mu       sync.Mutex
	closers  []func()
	released bool
	once     sync.Once
}

// own attaches a resource released by cleanup. Resources attached after
// cleanup are released immediately.
func (b *binding) own(closer func()) {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		closer()
		return
	}
	b.closers = append(b.closers, closer)
	b.mu.Unlock()
}

// cleanup unregisters the callback and releases owned resources. Only
// the first call has any effect.
func (b *binding) cleanup() {
	b.once.Do(func() {
		b.registry.unregister(b.name)

		b.mu.Lock()
		b.released = true
		closers := b.closers
		b.closers = nil
		b.mu.Unlock()

		for _, closer := range closers {
			closer()
		}
		if hook := b.registry.onCleanup; hook != nil {
			hook(b.name)
		}
	})
}

type registry struct {
	mu        sync.Mutex
	bindings  map[string]*binding
	newName   func() string
	onCleanup func(name string)
}

func newRegistry() *registry {
	return &registry{
		bindings: map[string]*binding{},
		newName:  randomCallbackName,
	}
}

func randomCallbackName() string {
	return callbackPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (r *registry) register() *binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := r.newName()
	for {
		if _, taken := r.bindings[name]; !taken {
			break
		}
		name = r.newName()
	}

	b := &binding{
		name:     name,
		result:   make(chan json.RawMessage, 1),
		registry: r,
	}
	r.bindings[name] = b
	return b
}

// dispatch invokes the named callback with payload. It reports false when
// no such callback is registered or it already received a value.
func (r *registry) dispatch(name string, payload json.RawMessage) bool {
	r.mu.Lock()
	b, ok := r.bindings[name]
	r.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case b.result <- payload:
		return true
	default:
		return false
	}
}

func (r *registry) unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, name)
}

func (r *registry) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings)
}
