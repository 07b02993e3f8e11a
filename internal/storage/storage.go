package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"happy-badge/internal/model"
)

// Store keeps recent badge records in memory and mirrors them to a JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	state model.StoredState
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.state = defaultState()
			return s.saveLocked()
		}
		return err
	}
	if len(b) == 0 {
		s.state = defaultState()
		return s.saveLocked()
	}

	var state model.StoredState
	if err := json.Unmarshal(b, &state); err != nil {
		return err
	}
	mergeDefaults(&state)
	s.state = state
	return nil
}

func defaultState() model.StoredState {
	return model.StoredState{
		Records:   []model.BadgeRecord{},
		CreatedAt: time.Now().UTC(),
	}
}

func mergeDefaults(state *model.StoredState) {
	if state.Records == nil {
		state.Records = []model.BadgeRecord{}
	}
	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now().UTC()
	}
}

func (s *Store) saveLocked() error {
	s.state.LastUpdatedUnixMS = time.Now().UnixMilli()
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// AddRecord prepends rec and drops the oldest records beyond limit.
// A limit <= 0 keeps everything.
func (s *Store) AddRecord(rec model.BadgeRecord, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]model.BadgeRecord, 0, len(s.state.Records)+1)
	records = append(records, rec)
	records = append(records, s.state.Records...)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	s.state.Records = records
	return s.saveLocked()
}

// ListRecords returns records newest first.
func (s *Store) ListRecords() []model.BadgeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.BadgeRecord, len(s.state.Records))
	copy(out, s.state.Records)
	return out
}

func (s *Store) GetRecord(id string) *model.BadgeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.state.Records {
		if r.ID == id {
			cp := r
			return &cp
		}
	}
	return nil
}
