package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
)

const (
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionMe            = "me"
	ActionSubmitRequest = "submit_request"
)

// SessionService drives the Anonymous -> Authenticated -> Anonymous
// lifecycle. Overlapping Login and RefreshMe calls are last-write-wins on
// the store, except that a rejected probe never clears a session that
// replaced the probed one.
type SessionService struct {
	transport ports.Transport
	sessions  ports.SessionStore
	hasher    ports.PasswordHasher
	reporter  ports.ErrorReporter

	// mu serializes session commits with the compare-and-clear of RefreshMe.
	mu sync.Mutex
}

func NewSessionService(transport ports.Transport, sessions ports.SessionStore, hasher ports.PasswordHasher, reporter ports.ErrorReporter) *SessionService {
	if reporter == nil {
		reporter = ports.NopReporter{}
	}

	return &SessionService{
		transport: transport,
		sessions:  sessions,
		hasher:    hasher,
		reporter:  reporter,
	}
}

func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	raw, err := s.transport.Call(ctx, ActionLogin, map[string]string{
		"username": username,
		"passhash": s.hasher.Digest(password),
	})
	if err != nil {
		return nil, err
	}

	response, err := parseEnvelope(ActionLogin, raw)
	if err != nil {
		return nil, err
	}
	if !response.ok() {
		return nil, domain.NewAuthError(response.message())
	}

	token := response.str("token")
	if token == "" {
		return nil, domain.NewAuthError("login response carried no token")
	}
	profile, err := response.profile()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.SetSession(ctx, domain.Session{Token: token, Profile: profile}); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return profile, nil
}

// Logout notifies the backend when a token exists and always clears the
// local session. Notification failures are reported, never returned.
func (s *SessionService) Logout(ctx context.Context) error {
	token, err := s.sessions.Token(ctx)
	if err != nil {
		s.reporter.Suppressed("logout.notify", fmt.Errorf("read token: %w", err))
	}

	if token != "" {
		s.notifyLogout(ctx, token)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

func (s *SessionService) notifyLogout(ctx context.Context, token string) {
	raw, err := s.transport.Call(ctx, ActionLogout, map[string]string{"token": token})
	if err != nil {
		s.reporter.Suppressed("logout.notify", err)
		return
	}

	response, err := parseEnvelope(ActionLogout, raw)
	if err != nil {
		s.reporter.Suppressed("logout.notify", err)
		return
	}
	if !response.ok() {
		s.reporter.Suppressed("logout.notify", domain.NewBackendError(ActionLogout, response.message(), "logout rejected"))
	}
}

// RefreshMe probes the stored token. Without a token it returns
// domain.ErrNotAuthenticated and makes no call.
func (s *SessionService) RefreshMe(ctx context.Context) (domain.Profile, error) {
	token, err := s.sessions.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	raw, err := s.transport.Call(ctx, ActionMe, map[string]string{"token": token})
	if err != nil {
		return nil, err
	}

	response, err := parseEnvelope(ActionMe, raw)
	if err != nil {
		return nil, err
	}
	if !response.ok() {
		rejected := domain.NewSessionRejectedError(response.message())
		if clearErr := s.clearIfCurrent(ctx, token); clearErr != nil {
			return nil, errors.Join(rejected, clearErr)
		}
		return nil, rejected
	}

	profile, err := response.profile()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.sessions.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if current != token {
		return profile, nil
	}
	if err := s.sessions.SetProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("store profile: %w", err)
	}

	return profile, nil
}

func (s *SessionService) clearIfCurrent(ctx context.Context, probed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.sessions.Token(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if current != probed {
		return nil
	}
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear rejected session: %w", err)
	}

	return nil
}

// SubmitRequest sends a reservation request. It leaves the session and
// any reservation cache untouched; callers refresh the cache afterward.
func (s *SessionService) SubmitRequest(ctx context.Context, request domain.ReservationRequest) (domain.Acknowledgement, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	token, err := s.sessions.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	params := request.Params()
	params["token"] = token

	raw, err := s.transport.Call(ctx, ActionSubmitRequest, params)
	if err != nil {
		return nil, err
	}

	response, err := parseEnvelope(ActionSubmitRequest, raw)
	if err != nil {
		return nil, err
	}
	if !response.ok() {
		return nil, domain.NewSubmissionError(response.message())
	}

	return response.acknowledgement()
}

func (s *SessionService) CurrentProfile(ctx context.Context) domain.Profile {
	return s.sessions.Profile(ctx)
}

// CurrentSession reads the stored session without asking the backend.
func (s *SessionService) CurrentSession(ctx context.Context) (domain.Session, error) {
	token, err := s.sessions.Token(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read token: %w", err)
	}
	return domain.Session{Token: token, Profile: s.sessions.Profile(ctx)}, nil
}
