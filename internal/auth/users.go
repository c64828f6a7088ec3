// internal/auth/users.go
//
// User accounts stored in SQLite: signup validation, bcrypt password hashes,
// lookups, and per-user game stats.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	RoundsPlayed int       `json:"roundsPlayed"`
	WordsFound   int       `json:"wordsFound"`
	BestScore    int       `json:"bestScore"`
}

// Users is the users table repository.
type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users { return &Users{db: db} }

// Create validates input, hashes the password and inserts a new user.
// Uniqueness is enforced by the users table (case-insensitive).
func (u *Users) Create(ctx context.Context, username, pw string) (*User, error) {
	username = normalizeUsername(username)
	if err := validateSignup(username, pw); err != nil {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if _, err := u.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt.Format(time.RFC3339)); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user when username and password match.
func (u *Users) Authenticate(ctx context.Context, username, pw string) (*User, error) {
	user, err := u.FindByUsername(ctx, normalizeUsername(username))
	if err != nil || !checkPassword(user.PasswordHash, pw) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (u *Users) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, rounds_played, words_found, best_score
	                                  FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

func (u *Users) FindByID(ctx context.Context, id string) (*User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, rounds_played, words_found, best_score
	                                  FROM users WHERE id=?`, id)
	return scanUser(row)
}

// RoundStarted bumps the rounds played counter.
func (u *Users) RoundStarted(ctx context.Context, id string) error {
	_, err := u.db.ExecContext(ctx, `UPDATE users SET rounds_played = rounds_played + 1 WHERE id=?`, id)
	return err
}

// WordFound counts an accepted word and raises the best score to score if higher.
func (u *Users) WordFound(ctx context.Context, id string, score int) error {
	_, err := u.db.ExecContext(ctx,
		`UPDATE users SET words_found = words_found + 1, best_score = MAX(best_score, ?) WHERE id=?`, score, id)
	return err
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	var created string
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &created,
		&user.RoundsPlayed, &user.WordsFound, &user.BestScore)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &user, nil
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3-24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 72 {
		return errors.New("password must be 8-72 chars")
	}
	return nil
}
