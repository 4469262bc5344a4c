package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ecliptor/intruder-escape-server/internal/score"
)

// maxFileEntries caps how many entries the score file retains.
const maxFileEntries = 100

// scoreFile is the on-disk layout of the leaderboard.
type scoreFile struct {
	Scores []*score.Entry `json:"scores"`
}

// FileStore implements ScoreStore on a local JSON file. The whole
// leaderboard lives in memory, kept sorted best first, and the file is
// rewritten on every submit.
type FileStore struct {
	path string

	mu      sync.Mutex
	entries []*score.Entry
}

// NewFileStore loads the leaderboard at path, starting empty when the
// file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read score file: %w", err)
	}

	var f scoreFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse score file %s: %w", path, err)
	}
	s.entries = f.Scores
	return s, nil
}

// Submit records a finished round and rewrites the file.
func (s *FileStore) Submit(_ context.Context, e *score.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].RanksAbove(s.entries[j])
	})
	if len(s.entries) > maxFileEntries {
		s.entries = s.entries[:maxFileEntries]
	}
	return s.write()
}

// Top returns the highest-ranked entries, best first.
func (s *FileStore) Top(_ context.Context, limit int) ([]*score.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]*score.Entry, limit)
	copy(out, s.entries)
	return out, nil
}

// Best returns a player's highest-ranked entry, or nil when the player
// has none. Entries are sorted, so the first match is the best one.
func (s *FileStore) Best(_ context.Context, nickname string) (*score.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Nickname == nickname {
			return e, nil
		}
	}
	return nil, nil
}

// Close is a no-op; every submit already persisted the file.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) write() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create score dir: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write score file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(scoreFile{Scores: s.entries})
}
