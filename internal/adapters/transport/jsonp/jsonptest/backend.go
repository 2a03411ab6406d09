// Package jsonptest runs an in-memory reservation backend that answers
// the JSONP actions the client uses.
package jsonptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/bnema/ludoteca-cli/internal/adapters/hash"
	"github.com/google/uuid"
)

const (
	StatusRequested = "Inviata"
	StatusApproved  = "Approvata"
)

type user struct {
	passhash string
	profile  map[string]any
}

type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	users    map[string]user
	tokens   map[string]string
	statuses map[string]string
	requests []url.Values
	calls    map[string]int
	failing  map[string]int
}

func NewBackend() *Backend {
	b := &Backend{
		users:    map[string]user{},
		tokens:   map[string]string{},
		statuses: map[string]string{},
		calls:    map[string]int{},
		failing:  map[string]int{},
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *Backend) Close() {
	b.server.Close()
}

// URL is the endpoint to configure; it carries a query like a hosted
// script deployment does.
func (b *Backend) URL() string {
	return b.server.URL + "/exec?deployment=test"
}

func (b *Backend) AddUser(username, password string, profile map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = user{passhash: hash.SHA256{}.Digest(password), profile: profile}
}

func (b *Backend) SetStatus(title, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[strings.ToLower(strings.TrimSpace(title))] = status
}

func (b *Backend) Status(title string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statuses[strings.ToLower(strings.TrimSpace(title))]
}

// ExpireSessions invalidates every issued token.
func (b *Backend) ExpireSessions() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]string{}
}

// FailNext makes the next n calls of action answer with HTTP 500.
func (b *Backend) FailNext(action string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[action] += n
}

func (b *Backend) Calls(action string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[action]
}

func (b *Backend) Requests() []url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]url.Values(nil), b.requests...)
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	action := query.Get("action")

	b.mu.Lock()
	b.calls[action]++
	if b.failing[action] > 0 {
		b.failing[action]--
		b.mu.Unlock()
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	response := b.handle(action, query)
	b.mu.Unlock()

	payload, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = fmt.Fprintf(w, "/**/%s(%s);", query.Get("callback"), payload)
}

func (b *Backend) handle(action string, query url.Values) map[string]any {
	switch action {
	case "login":
		u, ok := b.users[query.Get("username")]
		if !ok || u.passhash != query.Get("passhash") {
			return map[string]any{"ok": false, "error": "Credenziali non valide"}
		}
		token := uuid.NewString()
		b.tokens[token] = query.Get("username")
		return map[string]any{"ok": true, "token": token, "profile": u.profile}
	case "logout":
		delete(b.tokens, query.Get("token"))
		return map[string]any{"ok": true}
	case "me":
		username, ok := b.tokens[query.Get("token")]
		if !ok {
			return map[string]any{"ok": false, "error": "expired"}
		}
		return map[string]any{"ok": true, "profile": b.users[username].profile}
	case "submit_request":
		if _, ok := b.tokens[query.Get("token")]; !ok {
			return map[string]any{"ok": false, "error": "Sessione scaduta"}
		}
		key := strings.ToLower(strings.TrimSpace(query.Get("titolo")))
		if status := b.statuses[key]; status == StatusRequested || status == StatusApproved {
			return map[string]any{"ok": false, "error": "Gioco non disponibile"}
		}
		b.requests = append(b.requests, query)
		b.statuses[key] = StatusRequested
		return map[string]any{"ok": true, "id": fmt.Sprintf("R-%d", len(b.requests))}
	case "reservations_status":
		statusMap := map[string]string{}
		for _, title := range strings.Split(query.Get("titoli"), "|") {
			key := strings.ToLower(strings.TrimSpace(title))
			if key == "" {
				continue
			}
			statusMap[key] = b.statuses[key]
		}
		return map[string]any{"ok": true, "map": statusMap}
	default:
		return map[string]any{"ok": false, "error": "unknown action " + action}
	}
}
