package watchlist

import (
	"slices"
	"sync"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/model"
)

// Manager owns the persisted watchlist with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager loads the watchlist from disk, seeding it with defaults when
// the file does not exist yet.
func NewManager(filePath, defaults string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	if state == nil {
		if defaults == "" {
			defaults = DefaultCodes
		}
		state = &model.WatchlistState{Codes: Parse(defaults)}
		if err := SaveState(filePath, state); err != nil {
			return nil, err
		}
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// Codes returns a copy of the current codes in order.
func (m *Manager) Codes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Codes)
}

// String returns the watchlist as a comma-separated ticker string.
func (m *Manager) String() string {
	return Join(m.Codes())
}

// Add appends the codes in s not already present and returns them.
func (m *Manager) Add(s string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var added []string
	for _, code := range Parse(s) {
		if !slices.Contains(m.state.Codes, code) {
			m.state.Codes = append(m.state.Codes, code)
			added = append(added, code)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}
	return added, m.save()
}

// Remove deletes the codes in s and returns the ones that were present.
func (m *Manager) Remove(s string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for _, code := range Parse(s) {
		if i := slices.Index(m.state.Codes, code); i >= 0 {
			m.state.Codes = slices.Delete(m.state.Codes, i, i+1)
			removed = append(removed, code)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	return removed, m.save()
}

// Set replaces the whole watchlist with the codes in s.
func (m *Manager) Set(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Codes = Parse(s)
	return m.save()
}

func (m *Manager) save() error {
	if err := SaveState(m.filePath, m.state); err != nil {
		logger.Error("failed to save watchlist", logger.String("path", m.filePath), logger.ErrorField(err))
		return err
	}
	return nil
}
