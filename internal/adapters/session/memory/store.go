package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bnema/todos/internal/domain"
	"github.com/bnema/todos/internal/ports"
)

// Store keeps sessions in process memory. A session idle for longer than the
// TTL is treated as gone. A TTL of zero disables expiry.
type Store struct {
	ttl      time.Duration
	clock    ports.Clock
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(ttl time.Duration, clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]domain.Session),
	}
}

func (s *Store) Get(ctx context.Context, id string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || s.expired(session, s.clock.Now()) {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return session.Clone(), nil
}

func (s *Store) Put(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(session.ID) == "" {
		return errors.New("session id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.expired(session, now) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep(s.clock.Now())
			if onSweep != nil && removed > 0 {
				onSweep(removed)
			}
		}
	}
}

func (s *Store) expired(session domain.Session, now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}

	return now.Sub(session.UpdatedAt) > s.ttl
}
