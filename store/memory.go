package store

import "sync"

// Memory keeps a best score in process memory only
type Memory struct {
	mu    sync.Mutex
	score int
}

func (m *Memory) LoadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *Memory) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.score {
		m.score = score
	}
	return nil
}

// MemorySlots is the in-memory counterpart of DB, for runs without a
// database file.
type MemorySlots struct {
	mu    sync.Mutex
	slots map[string]*Memory
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string]*Memory)}
}

// Slot returns the store for name, creating it on first use
func (m *MemorySlots) Slot(name string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[name]
	if !ok {
		s = &Memory{}
		m.slots[name] = s
	}
	return s
}

// Slots lists every slot with its score
func (m *MemorySlots) Slots() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.slots))
	for name, s := range m.slots {
		out[name], _ = s.LoadHighScore()
	}
	return out, nil
}
