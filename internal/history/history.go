// Package history records finished and in-progress rounds in SQLite so
// players can list what they played. A round is identified by its session
// ID plus the time the round started, since restarting a session keeps its ID.
package history

import (
	"context"
	"database/sql"
	"time"
)

// Owner identifies who played a round: a signed-in user or an anonymous cookie.
type Owner struct {
	UserID      string
	AnonymousID string
}

func (o Owner) args() (any, any) {
	var user, anon any
	if o.UserID != "" {
		user = o.UserID
	} else if o.AnonymousID != "" {
		anon = o.AnonymousID
	}
	return user, anon
}

// Round is one row of the rounds table.
type Round struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Score     int       `json:"score"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Start records a new round with score 0.
func (s *Store) Start(ctx context.Context, owner Owner, id, root string, startedAt time.Time) error {
	user, anon := owner.args()
	now := stamp(time.Now())
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO rounds (id, user_id, anonymous_id, root, score, started_at, updated_at)
        VALUES (?, ?, ?, ?, 0, ?, ?)`,
		id, user, anon, root, stamp(startedAt), now)
	return err
}

// SetScore updates the score of the round that started at startedAt.
func (s *Store) SetScore(ctx context.Context, id string, startedAt time.Time, score int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE rounds SET score=?, updated_at=? WHERE id=? AND started_at=?`,
		score, stamp(time.Now()), id, stamp(startedAt))
	return err
}

// ClaimAnonymous moves every round played under anonID to userID.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE rounds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

// ListByUser returns the user's most recent rounds, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, root, score, started_at, updated_at
        FROM rounds WHERE user_id=?
        ORDER BY started_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Round{}
	for rows.Next() {
		var r Round
		var started, updated string
		if err := rows.Scan(&r.ID, &r.Root, &r.Score, &started, &updated); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, r)
	}
	return out, rows.Err()
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
