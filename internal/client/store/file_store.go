// Package store persists client session state on disk: the bearer token, the
// cached profile snapshot, and the one-time intro flag.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

const (
	tokenFile   = "session_token"
	profileFile = "user_profile.json"
	introFile   = "intro_seen.json"
)

type introFlag struct {
	Seen bool `json:"seen"`
}

// FileStore stores session state under a directory, one file per key.
// A missing file means the key is absent, not an error.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// ---------- Token ----------

func (s *FileStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

func (s *FileStore) LoadToken() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// ---------- Profile snapshot ----------

func (s *FileStore) SaveProfile(account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.dir, profileFile), account, 0o600)
}

func (s *FileStore) LoadProfile() (*domain.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var account domain.Account
	found, err := readJSON(filepath.Join(s.dir, profileFile), &account)
	if err != nil || !found {
		return nil, false, err
	}
	return &account, true, nil
}

// ---------- Session lifecycle ----------

// ClearSession removes the persisted token and profile. Missing files are
// not an error.
func (s *FileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, name := range []string{tokenFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// ---------- Intro flag ----------

func (s *FileStore) SetIntroSeen(seen bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.dir, introFile), introFlag{Seen: seen}, 0o600)
}

func (s *FileStore) IntroSeen() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var flag introFlag
	found, err := readJSON(filepath.Join(s.dir, introFile), &flag)
	if err != nil || !found {
		return false, err
	}
	return flag.Seen, nil
}

// ---------- helpers ----------

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func writeJSON(path string, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, mode)
}
