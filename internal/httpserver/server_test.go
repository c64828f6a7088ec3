package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/storage/sqlite"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

// brokenStore saves fine but fails every read, like an unreachable redis.
type brokenStore struct {
	store.Store
}

func (brokenStore) Get(context.Context, string) (*game.Session, error) {
	return nil, errors.New("connection refused")
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T, roots ...string) (*Server, *client) {
	t.Helper()
	return newTestServerWithStore(t, store.NewMemoryStore(), roots...)
}

func newTestServerWithStore(t *testing.T, st store.Store, roots ...string) (*Server, *client) {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(db, assets.Migrations()))

	if len(roots) == 0 {
		roots = []string{"teacher"}
	}
	lex := words.New(roots, []string{"cheat", "reach", "teach", "each", "heat", "hate", "silk", "worm"}, "silkworm")

	s := New(cfg, st, db, lex)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return s, &client{t: t, base: ts.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	assert.Contains(c.t, res.Header.Get("Content-Type"), "application/json")
	if out != nil {
		require.NoError(c.t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func (c *client) post(path string, body any, out any) int { return c.do(http.MethodPost, path, body, out) }
func (c *client) get(path string, out any) int           { return c.do(http.MethodGet, path, nil, out) }

func TestHealthAndDebug(t *testing.T) {
	_, c := newTestServer(t)

	var health map[string]bool
	assert.Equal(t, http.StatusOK, c.get("/health", &health))
	assert.True(t, health["ok"])

	var counts map[string]int
	assert.Equal(t, http.StatusOK, c.get("/debug/words", &counts))
	assert.Equal(t, 1, counts["roots"])
	assert.Equal(t, 9, counts["dictionary"])

	var nf map[string]string
	assert.Equal(t, http.StatusNotFound, c.get("/nope", &nf))
	assert.Equal(t, "not_found", nf["error"])
}

func TestRound_Scenario(t *testing.T) {
	_, c := newTestServer(t)

	// Given: a round on "teacher"
	var st roundState
	require.Equal(t, http.StatusOK, c.post("/round/new", newRoundReq{Root: "Teacher"}, &st))
	assert.NotEmpty(t, st.RoundID)
	assert.Equal(t, "teacher", st.Root)
	assert.Equal(t, "en", st.Locale)
	assert.Empty(t, st.Words)
	assert.Equal(t, 0, st.Score)

	// When: "cheat" is guessed
	var res guessRes
	require.Equal(t, http.StatusOK, c.post("/round/guess", guessReq{RoundID: st.RoundID, Word: " CHEAT "}, &res))

	// Then: it is accepted and scored
	assert.True(t, res.Accepted)
	assert.Equal(t, "cheat", res.Word)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, []string{"cheat"}, res.Words)
	assert.Empty(t, res.Title)

	// Then: each rejection is a 200 with its reason, title and message
	for _, tc := range []struct {
		word   string
		reason game.Reason
	}{
		{"zz", game.ReasonTooShort},
		{"teacher", game.ReasonSameAsRoot},
		{"cheat", game.ReasonAlreadyUsed},
		{"eel", game.ReasonNotPossible},
		{"hte", game.ReasonNotReal},
	} {
		var rej guessRes
		require.Equal(t, http.StatusOK, c.post("/round/guess", guessReq{RoundID: st.RoundID, Word: tc.word}, &rej), tc.word)
		assert.False(t, rej.Accepted, tc.word)
		assert.Equal(t, tc.reason, rej.Reason, tc.word)
		assert.Equal(t, tc.reason.Title(), rej.Title)
		assert.Equal(t, tc.reason.Message("teacher"), rej.Message)
		assert.Equal(t, 1, rej.Score)
	}

	// Then: the stored state has one word, newest first after another hit
	require.Equal(t, http.StatusOK, c.post("/round/guess", guessReq{RoundID: st.RoundID, Word: "reach"}, &res))
	var got roundState
	require.Equal(t, http.StatusOK, c.get("/round/"+st.RoundID, &got))
	assert.Equal(t, []string{"reach", "cheat"}, got.Words)
	assert.Equal(t, 2, got.Score)
}

func TestRound_RandomRoot(t *testing.T) {
	_, c := newTestServer(t, "silkworm")

	var st roundState
	require.Equal(t, http.StatusOK, c.post("/round/new", nil, &st))
	assert.Equal(t, "silkworm", st.Root)
}

func TestRound_Restart(t *testing.T) {
	_, c := newTestServer(t, "silkworm")

	var st roundState
	require.Equal(t, http.StatusOK, c.post("/round/new", newRoundReq{Root: "teacher"}, &st))
	var res guessRes
	require.Equal(t, http.StatusOK, c.post("/round/guess", guessReq{RoundID: st.RoundID, Word: "cheat"}, &res))
	require.True(t, res.Accepted)

	// When: the round restarts
	var restarted roundState
	require.Equal(t, http.StatusOK, c.post("/round/restart", restartReq{RoundID: st.RoundID}, &restarted))

	// Then: same round ID, new root, no words
	assert.Equal(t, st.RoundID, restarted.RoundID)
	assert.Equal(t, "silkworm", restarted.Root)
	assert.Empty(t, restarted.Words)
	assert.Equal(t, 0, restarted.Score)
}

func TestRound_Locale(t *testing.T) {
	_, c := newTestServer(t)

	var st roundState
	require.Equal(t, http.StatusOK, c.post("/round/new", newRoundReq{Root: "teacher", Locale: "en_GB"}, &st))
	assert.Equal(t, "en_GB", st.Locale)

	// Unparsable tags and languages without a dictionary are refused up front.
	for _, locale := range []string{"xx-bogus!", "fr"} {
		var e map[string]string
		assert.Equal(t, http.StatusBadRequest, c.post("/round/new", newRoundReq{Root: "teacher", Locale: locale}, &e), locale)
		assert.Equal(t, "bad_locale", e["error"])
	}
}

func TestRound_Errors(t *testing.T) {
	_, c := newTestServer(t)

	var e map[string]string
	assert.Equal(t, http.StatusNotFound, c.post("/round/guess", guessReq{RoundID: "missing", Word: "cheat"}, &e))
	assert.Equal(t, "not_found", e["error"])
	assert.Equal(t, http.StatusBadRequest, c.post("/round/guess", guessReq{Word: "cheat"}, &e))
	assert.Equal(t, http.StatusBadRequest, c.post("/round/guess", "not an object", &e))
	assert.Equal(t, http.StatusBadRequest, c.post("/round/restart", nil, &e))
	assert.Equal(t, http.StatusNotFound, c.get("/round/missing", &e))
}

func TestDaily(t *testing.T) {
	s, c := newTestServer(t, "teacher", "silkworm", "painting")
	date, root := s.today()

	// Given: today's round
	var nr dailyNewRes
	require.Equal(t, http.StatusOK, c.post("/daily/new", nil, &nr))
	require.False(t, nr.Played)
	require.NotNil(t, nr.Round)
	assert.Equal(t, date, nr.Date)
	assert.Equal(t, root, nr.Round.Root)
	assert.Equal(t, root, daily.Root(time.Now(), s.cfg.DailySalt, s.lex.Roots(), ""))

	// When: the player finds a word and asks for the round again
	word := map[string]string{"teacher": "cheat", "silkworm": "silk", "painting": "zzz"}[root]
	var res guessRes
	require.Equal(t, http.StatusOK, c.post("/daily/guess", dailyGuessReq{Word: word}, &res))
	var again dailyNewRes
	require.Equal(t, http.StatusOK, c.post("/daily/new", nil, &again))

	// Then: the round resumes
	assert.Equal(t, nr.Round.RoundID, again.Round.RoundID)
	assert.Equal(t, res.Words, again.Round.Words)

	// When: the player submits
	var sub dailySubmitRes
	require.Equal(t, http.StatusOK, c.post("/daily/submit", nil, &sub))
	assert.Equal(t, res.Score, sub.Score)

	// Then: today is done and the leaderboard shows the result
	var done dailyNewRes
	require.Equal(t, http.StatusOK, c.post("/daily/new", nil, &done))
	assert.True(t, done.Played)
	assert.Nil(t, done.Round)

	var e map[string]string
	assert.Equal(t, http.StatusConflict, c.post("/daily/submit", nil, &e))
	assert.Equal(t, http.StatusConflict, c.post("/daily/guess", dailyGuessReq{Word: "cheat"}, &e))

	var lb lbRes
	require.Equal(t, http.StatusOK, c.get("/daily/leaderboard", &lb))
	assert.Equal(t, date, lb.Date)
	require.Len(t, lb.Top, 1)
	assert.Equal(t, sub.Score, lb.Top[0].Score)

	assert.Equal(t, http.StatusBadRequest, c.get("/daily/leaderboard?date=yesterday", &e))
}

func TestDaily_RoundRoutesCannotTouchDailyRound(t *testing.T) {
	s, c := newTestServer(t, "teacher", "silkworm", "painting")
	_, root := s.today()

	// Given: today's daily round
	var nr dailyNewRes
	require.Equal(t, http.StatusOK, c.post("/daily/new", nil, &nr))
	require.NotNil(t, nr.Round)
	id := nr.Round.RoundID

	// When: the free-play routes are pointed at its ID
	var e map[string]string
	assert.Equal(t, http.StatusNotFound, c.post("/round/restart", restartReq{RoundID: id}, &e))
	assert.Equal(t, http.StatusNotFound, c.post("/round/guess", guessReq{RoundID: id, Word: "cheat"}, &e))
	assert.Equal(t, http.StatusNotFound, c.get("/round/"+id, &e))

	// Then: the daily round still has the date's root and no words
	var again dailyNewRes
	require.Equal(t, http.StatusOK, c.post("/daily/new", nil, &again))
	require.NotNil(t, again.Round)
	assert.Equal(t, root, again.Round.Root)
	assert.Empty(t, again.Round.Words)

	var sub dailySubmitRes
	require.Equal(t, http.StatusOK, c.post("/daily/submit", nil, &sub))
	var lb lbRes
	require.Equal(t, http.StatusOK, c.get("/daily/leaderboard", &lb))
	require.Len(t, lb.Top, 1)
}

func TestDaily_StoreFailure(t *testing.T) {
	_, c := newTestServerWithStore(t, brokenStore{store.NewMemoryStore()})

	// A failing store is a server error, not a missing round.
	var e map[string]string
	assert.Equal(t, http.StatusInternalServerError, c.post("/daily/guess", dailyGuessReq{Word: "cheat"}, &e))
	assert.Equal(t, "load_failed", e["error"])
	assert.Equal(t, http.StatusInternalServerError, c.post("/daily/submit", nil, &e))
	assert.Equal(t, "load_failed", e["error"])
}

func TestAuth_SignupStatsAndRounds(t *testing.T) {
	_, c := newTestServer(t)

	// Given: a guest who already played a round
	var guestRound roundState
	require.Equal(t, http.StatusOK, c.post("/round/new", newRoundReq{Root: "teacher"}, &guestRound))

	var e map[string]string
	assert.Equal(t, http.StatusUnauthorized, c.get("/auth/me", &e))

	// When: they sign up
	var me map[string]any
	require.Equal(t, http.StatusOK, c.post("/auth/signup", credentials{Username: "alice", Password: "password123"}, &me))
	assert.Equal(t, "alice", me["username"])

	// Then: they are signed in and own the guest round
	var who authUser
	require.Equal(t, http.StatusOK, c.get("/auth/me", &who))
	assert.Equal(t, "alice", who.Username)

	var st roundState
	require.Equal(t, http.StatusOK, c.post("/round/new", newRoundReq{Root: "teacher"}, &st))
	var res guessRes
	require.Equal(t, http.StatusOK, c.post("/round/guess", guessReq{RoundID: st.RoundID, Word: "cheat"}, &res))
	require.Equal(t, http.StatusOK, c.post("/round/guess", guessReq{RoundID: st.RoundID, Word: "reach"}, &res))

	var stats map[string]int
	require.Equal(t, http.StatusOK, c.get("/stats/me", &stats))
	assert.Equal(t, 1, stats["roundsPlayed"])
	assert.Equal(t, 2, stats["wordsFound"])
	assert.Equal(t, 2, stats["bestScore"])

	var rounds []map[string]any
	require.Equal(t, http.StatusOK, c.get("/rounds/mine", &rounds))
	require.Len(t, rounds, 2)
	assert.Equal(t, st.RoundID, rounds[0]["id"])
	assert.Equal(t, float64(2), rounds[0]["score"])
	assert.Equal(t, guestRound.RoundID, rounds[1]["id"])

	// When: they log out, gated routes close; logging back in reopens them
	require.Equal(t, http.StatusOK, c.post("/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.get("/auth/me", &e))
	assert.Equal(t, http.StatusUnauthorized, c.post("/auth/login", credentials{Username: "alice", Password: "nope-nope"}, &e))
	require.Equal(t, http.StatusOK, c.post("/auth/login", credentials{Username: "alice", Password: "password123"}, &me))
	assert.Equal(t, http.StatusOK, c.get("/auth/me", &who))

	assert.Equal(t, http.StatusConflict, c.post("/auth/signup", credentials{Username: "ALICE", Password: "password123"}, &e))
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/round/new", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, s.cfg.ClientOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
