package ports

import (
	"context"

	"github.com/bnema/todos/internal/domain"
)

// SessionStore maps a session id to its session record. Get returns
// domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Put(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
}
