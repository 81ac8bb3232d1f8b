package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akoval/minesweep/internal/sweep"
)

var ErrNotFound = errors.New("session not found")

// Store keeps live games in memory. Games in progress are deliberately
// never persisted; a session exists only as long as the process and its
// TTL allow.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Create(engine *sweep.Engine, playerID *int64, username *string) *Session {
	s := newSession(engine, playerID, username)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune drops sessions idle past the store TTL and reports how many went.
func (st *Store) Prune(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	pruned := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastActive)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Janitor prunes on an interval until ctx is cancelled.
func (st *Store) Janitor(ctx context.Context, interval time.Duration, log *logrus.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if pruned := st.Prune(now.UTC()); pruned > 0 {
				log.WithFields(logrus.Fields{
					"pruned": pruned,
					"live":   st.Len(),
				}).Info("pruned idle sessions")
			}
		}
	}
}
