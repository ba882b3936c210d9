package oracle

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// sessionLocks hands out one exclusive slot per session id. A slot lives
// only while some request holds or waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	sem  *semaphore.Weighted
	refs int // holders plus waiters
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{slots: make(map[string]*slot)}
}

// acquire blocks until the session is free or ctx ends.
func (l *sessionLocks) acquire(ctx context.Context, sessionID string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[sessionID]
	if !ok {
		s = &slot{sem: semaphore.NewWeighted(1)}
		l.slots[sessionID] = s
	}
	s.refs++
	l.mu.Unlock()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		l.unref(sessionID, s)
		return nil, err
	}
	return func() {
		s.sem.Release(1)
		l.unref(sessionID, s)
	}, nil
}

func (l *sessionLocks) unref(sessionID string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, sessionID)
	}
}

// size reports how many sessions currently have a slot.
func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
