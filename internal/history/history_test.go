package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/storage/sqlite"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(db, assets.Migrations()))
	return db
}

func addUser(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, "user_"+id, "x", time.Now().UTC().Format(time.RFC3339))
	require.NoError(t, err)
}

func TestStore_StartAndScore(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	addUser(t, db, "u1")
	st := NewStore(db)

	// Given: two rounds on the same session
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := first.Add(time.Minute)
	require.NoError(t, st.Start(ctx, Owner{UserID: "u1"}, "s1", "teacher", first))
	require.NoError(t, st.Start(ctx, Owner{UserID: "u1"}, "s1", "silkworm", second))

	// When: only the first round scores
	require.NoError(t, st.SetScore(ctx, "s1", first, 3))

	// Then: both rounds are listed newest first with their own scores
	rounds, err := st.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "silkworm", rounds[0].Root)
	assert.Equal(t, 0, rounds[0].Score)
	assert.Equal(t, "teacher", rounds[1].Root)
	assert.Equal(t, 3, rounds[1].Score)
	assert.True(t, first.Equal(rounds[1].StartedAt))
}

func TestStore_ClaimAnonymous(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	addUser(t, db, "u1")
	st := NewStore(db)

	require.NoError(t, st.Start(ctx, Owner{AnonymousID: "anon"}, "s1", "teacher", time.Now()))
	rounds, err := st.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, rounds)

	require.NoError(t, st.ClaimAnonymous(ctx, "anon", "u1"))
	rounds, err = st.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)

	assert.NoError(t, st.ClaimAnonymous(ctx, "", "u1"))
}
