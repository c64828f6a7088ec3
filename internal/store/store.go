// internal/store/store.go
//
// Persistence for in-progress game sessions.
// Implementations:
//   - memory: map + RWMutex, lost on restart (default).
//   - redis:  JSON blobs under round:<id>, expiring after a TTL.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrNotFound is returned by Get when no session has the requested ID.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
