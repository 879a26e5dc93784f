package pace

import "sync"

// Storage is the persistence boundary of the scheduler: per-item stats plus
// the single last-selected slot. Implementations must treat "not found" as
// absent data, never as an error.
//
// The selector issues strictly sequential calls; if one Storage instance is
// shared across goroutines, the implementation owns mutual exclusion.
type Storage interface {
	// GetStats returns the stats for itemID, or (nil, nil) when the item
	// has never been recorded.
	GetStats(itemID string) (*ItemStats, error)

	// SetStats stores the stats for itemID, replacing any previous record.
	SetStats(itemID string, stats ItemStats) error

	// LastSelected returns the item id most recently chosen by the
	// selector, or "" when none has been chosen yet.
	LastSelected() (string, error)

	// SetLastSelected records the item id chosen by the selector.
	SetLastSelected(itemID string) error

	// Preload is an advisory bulk hint issued before a selection pass.
	// Implementations may warm caches or ignore it entirely.
	Preload(itemIDs []string) error
}

// MemoryStore is an ephemeral, mutex-guarded Storage for tests and
// throwaway sessions. Data is lost when the process exits.
type MemoryStore struct {
	mu           sync.RWMutex
	stats        map[string]ItemStats
	lastSelected string
}

var _ Storage = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{stats: make(map[string]ItemStats)}
}

// GetStats implements Storage. The returned record is a copy; callers may
// mutate it freely.
func (m *MemoryStore) GetStats(itemID string) (*ItemStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.stats[itemID]
	if !ok {
		return nil, nil
	}
	out := st.clone()
	return &out, nil
}

// SetStats implements Storage.
func (m *MemoryStore) SetStats(itemID string, stats ItemStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[itemID] = stats.clone()
	return nil
}

// LastSelected implements Storage.
func (m *MemoryStore) LastSelected() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSelected, nil
}

// SetLastSelected implements Storage.
func (m *MemoryStore) SetLastSelected(itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSelected = itemID
	return nil
}

// Preload implements Storage. The map is already in memory; nothing to do.
func (m *MemoryStore) Preload([]string) error {
	return nil
}

// Len returns the number of stored item records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stats)
}
