package daily

import (
	"context"
	"database/sql"
	"strings"
)

// Result is one player's submitted daily round.
type Result struct {
	PlayerID  string   `json:"playerId"`
	Date      string   `json:"date"`
	Root      string   `json:"root"`
	Score     int      `json:"score"`
	Words     []string `json:"words"`
	ElapsedMs int      `json:"elapsedMs"`
}

// LBRow is one leaderboard line.
type LBRow struct {
	PlayerID  string `json:"playerId"`
	Score     int    `json:"score"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether player has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?`,
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r. It reports false when the player already had a
// result for that date; the earlier result is kept.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (player_id, date, root, score, words, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.PlayerID, r.Date, r.Root, r.Score, strings.Join(r.Words, ","), r.ElapsedMs,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Leaderboard returns the best results for date: highest score first, then
// fastest, then earliest submitted.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT player_id, score, elapsed_ms
        FROM daily_results
        WHERE date=?
        ORDER BY score DESC, elapsed_ms ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Score, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
