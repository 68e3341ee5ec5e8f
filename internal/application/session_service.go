package application

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/bnema/todos/internal/domain"
	"github.com/bnema/todos/internal/ports"
	"github.com/google/uuid"
)

const sessionLockStripes = 64

// Mutation changes a session's lists. A non-nil error discards every change.
type Mutation func(state *domain.SessionState) error

// SessionService loads, mutates and saves session records. Calls for the same
// session id are serialised.
type SessionService struct {
	store ports.SessionStore
	clock ports.Clock
	newID func() string
	locks [sessionLockStripes]sync.Mutex
}

func NewSessionService(store ports.SessionStore, clock ports.Clock) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		store: store,
		clock: clock,
		newID: uuid.NewString,
	}
}

// Take returns the session for id and clears its flash. Empty, unknown and
// expired ids start a new session; the returned session carries the id to hand
// back to the client.
func (s *SessionService) Take(ctx context.Context, id string) (domain.Session, domain.Flash, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.open(ctx, id)
	if err != nil {
		return domain.Session{}, domain.Flash{}, err
	}

	flash := session.Flash
	session.Flash = domain.Flash{}
	session, err = s.save(ctx, session)
	if err != nil {
		return domain.Session{}, domain.Flash{}, err
	}

	return session, flash, nil
}

// Apply runs fn against a copy of the session state. When fn succeeds the copy
// replaces the stored state and notice becomes the success flash. When fn fails
// the stored session is left untouched and the unchanged session is returned
// along with fn's error. A session that was never stored comes back with an
// empty ID so callers do not hand out an id that resolves to nothing.
func (s *SessionService) Apply(ctx context.Context, id string, notice string, fn Mutation) (domain.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, stored, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	updated := session.Clone()
	if err := fn(&updated.State); err != nil {
		if !stored {
			session.ID = ""
		}
		return session, err
	}

	updated.Flash = domain.Flash{Success: notice}
	updated, err = s.save(ctx, updated)
	if err != nil {
		return session, err
	}

	return updated, nil
}

// Notify stores a flash without touching the lists.
func (s *SessionService) Notify(ctx context.Context, id string, flash domain.Flash) (domain.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.open(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	session.Flash = flash
	return s.save(ctx, session)
}

func (s *SessionService) open(ctx context.Context, id string) (domain.Session, error) {
	session, _, err := s.load(ctx, id)
	return session, err
}

// load reports whether the returned session already exists in the store.
func (s *SessionService) load(ctx context.Context, id string) (domain.Session, bool, error) {
	if id != "" {
		session, err := s.store.Get(ctx, id)
		if err == nil {
			return session, true, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, false, fmt.Errorf("load session: %w", err)
		}
	}

	return domain.Session{
		ID:    s.newID(),
		State: domain.SessionState{Lists: []domain.List{}},
	}, false, nil
}

func (s *SessionService) save(ctx context.Context, session domain.Session) (domain.Session, error) {
	session.UpdatedAt = s.clock.Now()
	if err := s.store.Put(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

func (s *SessionService) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%sessionLockStripes]
	mu.Lock()

	return mu.Unlock
}
