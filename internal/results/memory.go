package results

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	runs map[string]RunSummary
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]RunSummary)}
}

func (m *MemoryStore) Save(ctx context.Context, run RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := run.ID.String()
	if _, ok := m.runs[key]; ok {
		return ErrDuplicateRun
	}
	m.runs[key] = run
	return nil
}

func (m *MemoryStore) Top(ctx context.Context, limit int) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	scores := make([]Score, 0, len(m.runs))
	for _, r := range m.runs {
		scores = append(scores, ScoreOf(r))
	}
	return Rank(scores, limit), nil
}

// Runs returns the number of stored runs.
func (m *MemoryStore) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runs)
}

func (m *MemoryStore) Close() error { return nil }
