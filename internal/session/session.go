package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akoval/minesweep/internal/sweep"
)

// Session is one live game bound to an engine. Engine commands are not
// safe to interleave, so all access goes through Do, which treats the
// whole command as a critical section.
type Session struct {
	ID        string
	PlayerID  *int64
	Username  *string
	CreatedAt time.Time

	mu         sync.Mutex
	engine     *sweep.Engine
	lastActive time.Time
}

func newSession(engine *sweep.Engine, playerID *int64, username *string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		Username:   username,
		CreatedAt:  now,
		engine:     engine,
		lastActive: now,
	}
}

// Do runs fn with exclusive access to the session's engine and marks the
// session as active.
func (s *Session) Do(fn func(e *sweep.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now().UTC()
	return fn(s.engine)
}
