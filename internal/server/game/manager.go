package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"xiangqi/internal/xiangqi"
)

var ErrGameNotFound = errors.New("game not found")

// Manager 内存里的对局表，按 uuid 索引
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	now   func() time.Time
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState), now: time.Now}
}

// NewGame start 为 nil 时用标准开局
func (m *Manager) NewGame(start *xiangqi.Board, blackFirst bool) *GameState {
	g := xiangqi.NewGame()
	if blackFirst {
		g.MakeBlackMoveFirst()
	}
	if start != nil {
		g.ResetFromBoard(*start)
	}

	now := m.now()
	st := &GameState{
		ID:        uuid.NewString(),
		game:      g,
		CreatedAt: now,
		UpdatedAt: now,
		now:       m.now,
	}

	m.mu.Lock()
	m.games[st.ID] = st
	m.mu.Unlock()
	return st
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Purge 删掉超过 idle 没动过的对局，返回删除数量
func (m *Manager) Purge(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.LastUpdated().Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
