package server

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"snakearena/game"
)

// DefaultRoom is used when a request names no room
const DefaultRoom = "room-1"

// ManagerConfig is shared by every room the manager creates
type ManagerConfig struct {
	Rules            game.Rules
	TicksPerSecond   int
	MaxInputsPerTick int
	Logger           *zap.Logger
	// Scores returns the best-score slot of a room; nil keeps scores in memory only
	Scores func(roomID string) game.HighScoreStore
}

// RoomManager owns the lifecycle of every room
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	cfg   ManagerConfig
}

var (
	defaultManager *RoomManager
	once           sync.Once
)

// InitRoomManager configures the singleton; later calls are ignored.
func InitRoomManager(cfg ManagerConfig) error {
	if err := cfg.Rules.Validate(); err != nil {
		return err
	}
	once.Do(func() {
		defaultManager = NewRoomManager(cfg)
	})
	return nil
}

// GetRoomManager returns the singleton, with default rules if
// InitRoomManager was never called.
func GetRoomManager() *RoomManager {
	once.Do(func() {
		defaultManager = NewRoomManager(ManagerConfig{Rules: game.DefaultRules()})
	})
	return defaultManager
}

// NewRoomManager creates an unshared manager
func NewRoomManager(cfg ManagerConfig) *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room), cfg: cfg}
}

// GetOrCreateRoom returns the room, creating it and starting its ticker
func (m *RoomManager) GetOrCreateRoom(id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		var err error
		r, err = NewRoom(id, m.cfg)
		if err != nil {
			return nil, err
		}
		m.rooms[id] = r
		r.StartTicker()
		Log.Infof("room created: %s", id)
	}
	return r, nil
}

// Room returns an existing room
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// RoomIDs lists the rooms in name order
func (m *RoomManager) RoomIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StopAll stops every room's ticker
func (m *RoomManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		r.Stop()
		delete(m.rooms, id)
	}
}
