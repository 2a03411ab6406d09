package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
)

const (
	TokenKey   = "AB_TOKEN"
	ProfileKey = "AB_PROFILE"
)

// Store persists the session as two local storage entries: the raw token
// and the JSON-encoded profile.
type Store struct {
	storage  ports.LocalStorage
	reporter ports.ErrorReporter
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(storage ports.LocalStorage, reporter ports.ErrorReporter) *Store {
	if reporter == nil {
		reporter = ports.NopReporter{}
	}

	return &Store{storage: storage, reporter: reporter}
}

func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read session token: %w", err)
	}

	return token, nil
}

// SetSession overwrites token and profile. If the profile cannot be
// written the previous token is restored, so readers never pair the new
// token with the old profile.
func (s *Store) SetSession(ctx context.Context, session domain.Session) error {
	encodedProfile, err := encodeProfile(session.Profile)
	if err != nil {
		return err
	}

	previousToken, err := s.storage.Get(ctx, TokenKey)
	hadToken := err == nil
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("read previous session token: %w", err)
	}

	if err := s.storage.Put(ctx, TokenKey, session.Token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	if err := s.storage.Put(ctx, ProfileKey, encodedProfile); err != nil {
		var rollbackErr error
		if hadToken {
			rollbackErr = s.storage.Put(ctx, TokenKey, previousToken)
		} else {
			rollbackErr = s.storage.Delete(ctx, TokenKey)
		}
		if rollbackErr != nil {
			return fmt.Errorf("store session profile and rollback token: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("store session profile: %w", err)
	}

	return nil
}

func (s *Store) SetProfile(ctx context.Context, profile domain.Profile) error {
	encodedProfile, err := encodeProfile(profile)
	if err != nil {
		return err
	}

	if err := s.storage.Put(ctx, ProfileKey, encodedProfile); err != nil {
		return fmt.Errorf("store session profile: %w", err)
	}

	return nil
}

// Clear attempts both deletes even if the first one fails.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	if err := s.storage.Delete(ctx, TokenKey); err != nil {
		errs = append(errs, fmt.Errorf("delete session token: %w", err))
	}
	if err := s.storage.Delete(ctx, ProfileKey); err != nil {
		errs = append(errs, fmt.Errorf("delete session profile: %w", err))
	}

	return errors.Join(errs...)
}

func (s *Store) Profile(ctx context.Context) domain.Profile {
	raw, err := s.storage.Get(ctx, ProfileKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.reporter.Suppressed("session.profile.read", err)
		}
		return domain.Profile{}
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.reporter.Suppressed("session.profile.decode", err)
		return domain.Profile{}
	}
	if profile == nil {
		return domain.Profile{}
	}

	return profile
}

func encodeProfile(profile domain.Profile) (string, error) {
	if profile == nil {
		profile = domain.Profile{}
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode session profile: %w", err)
	}

	return string(data), nil
}
