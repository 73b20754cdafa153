package client

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/homelink/smarthome-system/internal/client/store"
	"github.com/homelink/smarthome-system/internal/core/domain"
)

// SessionService is the single source of truth for "is the user logged in".
// It owns the token and the cached profile snapshot, keeps both in sync with
// the on-disk store, and is safe for use from concurrent goroutines. It is
// injected into the Gateway rather than reached through package state.
type SessionService struct {
	store *store.FileStore
	log   zerolog.Logger

	mu           sync.RWMutex
	token        string
	user         *domain.Account
	initializing bool
}

// NewSessionService creates a session in the uninitialized state:
// Initializing reports true until Restore has run.
func NewSessionService(st *store.FileStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		store:        st,
		log:          log,
		initializing: true,
	}
}

// Restore loads any persisted session from disk. A storage failure is
// treated the same as no session found: the service always ends up in a
// definite logged-in or logged-out state, and Initializing is always cleared.
// Reports whether a session was found.
func (s *SessionService) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.initializing = false }()

	token, found, err := s.store.LoadToken()
	if err != nil {
		s.log.Warn().Err(err).Msg("session restore failed, starting logged out")
		return false
	}
	if !found {
		return false
	}

	s.token = token
	if user, ok, err := s.store.LoadProfile(); err == nil && ok {
		s.user = user
	}
	return true
}

// SetSession persists the token and profile, then updates in-memory state.
// Persistence and the in-memory update are a unit: when the write fails the
// session stays logged out and any partial write is removed. Concurrent
// calls serialize on the lock; the last writer wins.
func (s *SessionService) SetSession(token string, user *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveToken(token); err != nil {
		s.reset()
		return err
	}
	if user != nil {
		if err := s.store.SaveProfile(user); err != nil {
			s.reset()
			return err
		}
	}

	s.token = token
	s.user = user
	return nil
}

// reset drops persisted and in-memory state together. A prior session must
// not survive in memory after its replacement failed to persist.
// Caller holds the lock.
func (s *SessionService) reset() {
	_ = s.store.ClearSession()
	s.token = ""
	s.user = nil
}

// Clear drops the session locally: persisted state first (best effort), then
// in-memory state. The in-memory clear is unconditional even when the disk
// cleanup fails.
func (s *SessionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearSession(); err != nil {
		s.log.Warn().Err(err).Msg("failed to remove persisted session")
	}
	s.token = ""
	s.user = nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the cached profile snapshot, or nil. The snapshot
// may lag the backend; it is refreshed on login and profile fetches.
func (s *SessionService) User() *domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsLoggedIn reports whether a token is present.
func (s *SessionService) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Initializing reports whether Restore has not yet completed.
func (s *SessionService) Initializing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initializing
}

// UpdateUser replaces the cached profile snapshot, persisting it when logged
// in. Used after profile fetches and edits.
func (s *SessionService) UpdateUser(user *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	if s.token != "" && user != nil {
		if err := s.store.SaveProfile(user); err != nil {
			s.log.Warn().Err(err).Msg("failed to persist profile snapshot")
		}
	}
}
