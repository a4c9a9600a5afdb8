// Package storage provides durable key-value persistence for named
// records. Each record is a JSON file under the data directory; records
// are independent — there is no transactionality across keys.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Store persists named records as files under a single directory.
type Store struct {
	dir string
	log *zap.Logger
	mu  sync.Mutex
}

// New creates the data directory if needed and returns a Store over it.
func New(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Read returns the raw record stored under key. Any failure to read —
// missing file, unreadable storage, empty record — is reported as absent
// rather than as an error, so callers fall back to their defaults.
func (s *Store) Read(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("record unreadable, treating as absent",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Write replaces the record stored under key.
func (s *Store) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", key, err)
	}
	return nil
}

// Remove deletes the record stored under key. Removing an absent record
// is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove record %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
