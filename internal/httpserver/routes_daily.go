// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge, mounted under /daily:
//   - POST /daily/new         → start (or resume) today's round
//   - POST /daily/guess       → submit a candidate word for today's round
//   - POST /daily/submit      → record today's score and close the round
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Every player gets the same root on a given UTC date. The in-progress round
// lives in the session store under a per-player, per-date ID; only the
// submitted result is written to the database, once per player and date.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/guess", s.handleDailyGuess)
		r.Post("/submit", s.handleDailySubmit)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// today returns today's date key and root word.
func (s *Server) today() (date, root string) {
	now := s.now()
	return daily.DateKey(now), daily.Root(now, s.cfg.DailySalt, s.lex.Roots(), s.cfg.Words.DefaultRoot)
}

const dailyPrefix = "daily:"

func dailyRoundID(playerID, date string) string {
	return dailyPrefix + date + ":" + playerID
}

func isDailyRoundID(id string) bool { return strings.HasPrefix(id, dailyPrefix) }

// loadDailyRound fetches today's round for the player or writes the error
// response: 409 when there is no round to play, 500 when the store fails.
func (s *Server) loadDailyRound(w http.ResponseWriter, r *http.Request, id string) (*game.Session, bool) {
	sess, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusConflict, "no_session")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("roundId", id).Msg("load daily round")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return sess, true
}

type dailyNewRes struct {
	Date   string      `json:"date"`
	Played bool        `json:"played"`
	Round  *roundState `json:"round,omitempty"`
}

// handleDailyNew returns today's round, creating it on first visit.
// Players who already submitted today get Played=true and no round.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	pid := s.playerID(w, r)
	date, root := s.today()

	played, err := s.daily.AlreadyPlayed(r.Context(), pid, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	id := dailyRoundID(pid, date)
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error().Err(err).Msg("load daily round")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	if sess == nil {
		sess = game.NewSession(id, root, s.cfg.Words.Locale)
		if err := s.store.Save(r.Context(), sess); err != nil {
			log.Error().Err(err).Msg("save daily round")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
	}
	st := stateOf(sess)
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Round: &st})
}

type dailyGuessReq struct {
	Word string `json:"word"`
}

func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	var req dailyGuessReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _ := s.today()
	id := dailyRoundID(s.playerID(w, r), date)

	unlock := s.locks.lock(id)
	defer unlock()

	sess, ok := s.loadDailyRound(w, r, id)
	if !ok {
		return
	}
	v := sess.SubmitGuess(s.engine(sess), req.Word)
	if v.Accepted() {
		if err := s.store.Save(r.Context(), sess); err != nil {
			log.Error().Err(err).Msg("save daily round")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
	}
	writeJSON(w, http.StatusOK, verdictRes(sess, v))
}

type dailySubmitRes struct {
	Date      string `json:"date"`
	Score     int    `json:"score"`
	ElapsedMs int    `json:"elapsedMs"`
}

// handleDailySubmit records today's round and removes it from the store.
func (s *Server) handleDailySubmit(w http.ResponseWriter, r *http.Request) {
	pid := s.playerID(w, r)
	date, _ := s.today()
	id := dailyRoundID(pid, date)

	unlock := s.locks.lock(id)
	defer unlock()

	sess, ok := s.loadDailyRound(w, r, id)
	if !ok {
		return
	}
	res := daily.Result{
		PlayerID:  pid,
		Date:      date,
		Root:      sess.Root,
		Score:     sess.Score(),
		Words:     sess.Words,
		ElapsedMs: int(s.now().Sub(sess.StartedAt) / time.Millisecond),
	}
	inserted, err := s.daily.InsertResult(r.Context(), res)
	if err != nil {
		log.Error().Err(err).Msg("insert daily result")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("roundId", id).Msg("delete daily round")
	}
	if !inserted {
		writeError(w, http.StatusConflict, "already_played")
		return
	}
	writeJSON(w, http.StatusOK, dailySubmitRes{Date: date, Score: res.Score, ElapsedMs: res.ElapsedMs})
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = s.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
