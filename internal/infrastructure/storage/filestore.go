// Package storage provides the file-backed session store: one JSON blob at a
// fixed path, the durable-client-storage analogue of a single key holding a
// single serialized value.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/core/domain"
)

// FileStore persists the session at a fixed filesystem path.
type FileStore struct {
	path string
	log  zerolog.Logger
}

func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Save serializes the session and overwrites any prior blob. The file is
// written 0600: it holds a bearer token.
func (s *FileStore) Save(_ context.Context, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the blob. A missing file means no session. A blob that does not
// parse as a complete session — including a partial user/token pair — is
// deleted and reported as absent; corruption never surfaces as an error.
func (s *FileStore) Load(_ context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil || !session.Authenticated() {
		s.log.Warn().Str("path", s.path).Msg("discarding malformed session blob")
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Msg("session blob removal failed")
		}
		return nil, nil
	}
	return &session, nil
}

// Clear deletes the blob unconditionally. A missing file is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
