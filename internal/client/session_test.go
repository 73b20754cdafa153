package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/homelink/smarthome-system/internal/client/store"
	"github.com/homelink/smarthome-system/internal/core/domain"
)

func newSessionForTest(t *testing.T) (*SessionService, *store.FileStore) {
	t.Helper()
	st := store.NewFileStore(t.TempDir())
	return NewSessionService(st, zerolog.Nop()), st
}

func TestRestore_NoSession(t *testing.T) {
	s, _ := newSessionForTest(t)

	if !s.Initializing() {
		t.Fatalf("session should start initializing")
	}

	found := s.Restore()
	if found {
		t.Fatalf("expected no session")
	}
	if s.Initializing() {
		t.Fatalf("initializing must clear after restore")
	}
	if s.IsLoggedIn() {
		t.Fatalf("expected logged out")
	}
}

func TestRestore_WithPersistedSession(t *testing.T) {
	s, st := newSessionForTest(t)

	if err := st.SaveToken("abc123"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if err := st.SaveProfile(&domain.Account{ID: "acc_1", Email: "alice@example.com"}); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	if !s.Restore() {
		t.Fatalf("expected session to be restored")
	}
	if s.Token() != "abc123" {
		t.Fatalf("expected token abc123, got %q", s.Token())
	}
	if !s.IsLoggedIn() {
		t.Fatalf("expected logged in")
	}
	user := s.User()
	if user == nil || user.Email != "alice@example.com" {
		t.Fatalf("profile snapshot not restored: %+v", user)
	}
}

func TestRestore_StorageErrorFailsOpen(t *testing.T) {
	dir := t.TempDir()
	// A directory where the token file should be makes the read fail.
	if err := os.Mkdir(filepath.Join(dir, "session_token"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	s := NewSessionService(store.NewFileStore(dir), zerolog.Nop())

	if s.Restore() {
		t.Fatalf("expected restore to fail open")
	}
	if s.Initializing() {
		t.Fatalf("initializing must clear even on storage error")
	}
	if s.IsLoggedIn() {
		t.Fatalf("storage errors must leave the session logged out")
	}
}

func TestSetSession_PersistsBeforeMemory(t *testing.T) {
	s, st := newSessionForTest(t)

	err := s.SetSession("abc123", &domain.Account{ID: "acc_1"})
	if err != nil {
		t.Fatalf("set session: %v", err)
	}
	if s.Token() != "abc123" {
		t.Fatalf("token not set")
	}

	token, found, err := st.LoadToken()
	if err != nil || !found {
		t.Fatalf("token not persisted: found=%v err=%v", found, err)
	}
	if token != "abc123" {
		t.Fatalf("persisted token mismatch: %q", token)
	}
}

func TestSetSession_PersistFailureStaysLoggedOut(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	// The store directory path is an existing file, so every write fails.
	s := NewSessionService(store.NewFileStore(blocker), zerolog.Nop())

	if err := s.SetSession("abc123", nil); err == nil {
		t.Fatalf("expected persistence failure")
	}
	if s.IsLoggedIn() {
		t.Fatalf("failed persist must not leave the session logged in")
	}
	if s.Token() != "" {
		t.Fatalf("token must stay empty after failed persist")
	}
}

func TestSetSession_ReloginPersistFailureDropsOldSession(t *testing.T) {
	dir := t.TempDir()
	s := NewSessionService(store.NewFileStore(dir), zerolog.Nop())

	if err := s.SetSession("first", nil); err != nil {
		t.Fatalf("set session: %v", err)
	}

	// A directory where the profile file should be makes the profile write
	// fail after the token write already succeeded.
	if err := os.Mkdir(filepath.Join(dir, "user_profile.json"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err := s.SetSession("second", &domain.Account{ID: "acc_1"})
	if err == nil {
		t.Fatalf("expected persistence failure")
	}
	if s.IsLoggedIn() || s.Token() != "" {
		t.Fatalf("stale session survived failed re-login: token=%q", s.Token())
	}
	if s.User() != nil {
		t.Fatalf("stale profile snapshot survived failed re-login")
	}
	if _, found, _ := store.NewFileStore(dir).LoadToken(); found {
		t.Fatalf("persisted token should be gone after failed re-login")
	}
}

func TestClear_AlwaysLogsOut(t *testing.T) {
	s, st := newSessionForTest(t)

	if err := s.SetSession("abc123", &domain.Account{ID: "acc_1"}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	s.Clear()

	if s.IsLoggedIn() || s.Token() != "" {
		t.Fatalf("expected logged out after clear")
	}
	if s.User() != nil {
		t.Fatalf("expected user snapshot cleared")
	}
	if _, found, _ := st.LoadToken(); found {
		t.Fatalf("persisted token should be gone")
	}
}

func TestSetSession_LastWriteWins(t *testing.T) {
	s, _ := newSessionForTest(t)

	if err := s.SetSession("first", nil); err != nil {
		t.Fatalf("set session: %v", err)
	}
	if err := s.SetSession("second", nil); err != nil {
		t.Fatalf("set session: %v", err)
	}
	if s.Token() != "second" {
		t.Fatalf("expected last write to win, got %q", s.Token())
	}
}
