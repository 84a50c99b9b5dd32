package httpserver

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// Session is one hosted game and the random agent that answers CPU
// requests for it. Every access to the game goes through With, so a turn
// resolution never interleaves with another request on the same game.
type Session struct {
	ID string

	mu   sync.Mutex
	game *engine.Game
	cpu  *engine.RandomStrategy
}

// With runs fn while holding the session lock.
func (s *Session) With(fn func(g *engine.Game, cpu *engine.RandomStrategy) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game, s.cpu)
}

// Store keeps hosted games.
type Store interface {
	// Create registers a game under a fresh ID.
	Create(ctx context.Context, g *engine.Game, cpu *engine.RandomStrategy) (*Session, error)

	// Get retrieves a session by ID, or an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Len returns the number of stored sessions.
	Len() int
}

// memory is an in-memory Store. The map lock only guards lookups; game
// state is guarded by each session's own lock.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Create(ctx context.Context, g *engine.Game, cpu *engine.RandomStrategy) (*Session, error) {
	s := &Session{ID: uuid.NewString(), game: g, cpu: cpu}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "game %s", id)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
