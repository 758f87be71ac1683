// Package file keeps the submission log as a single JSON array on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lead-voucher-backend/internal/features/lead/models"
)

// Store holds every entry recorded by this process and rewrites the whole file on each
// append. Entries written by other processes are overwritten.
type Store struct {
	path string

	mu      sync.Mutex
	entries []models.LogEntry
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Append(_ context.Context, entry models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode submission log: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create submission log dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write submission log: %w", err)
	}
	return nil
}

// Entries returns a copy of the in-process entries.
func (s *Store) Entries(context.Context) ([]models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
