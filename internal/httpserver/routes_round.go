// internal/httpserver/routes_round.go
//
// Free-play rounds:
//   - POST /round/new      → start a session (random root unless one is given)
//   - POST /round/guess    → submit a candidate word
//   - POST /round/restart  → new random root, same session, words cleared
//   - GET  /round/{id}     → current state
//
// History rows and user stats are best effort: a failed write is logged and
// never fails the request.

package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/history"
	"github.com/robalobadob/wordscramble/internal/store"
)

func (s *Server) mountRounds(r chi.Router) {
	r.Post("/round/new", s.handleNewRound)
	r.Post("/round/guess", s.handleGuess)
	r.Post("/round/restart", s.handleRestart)
	r.Get("/round/{id}", s.handleGetRound)
}

// roundState is the JSON view of a session.
type roundState struct {
	RoundID string   `json:"roundId"`
	Root    string   `json:"root"`
	Locale  string   `json:"locale"`
	Words   []string `json:"words"`
	Score   int      `json:"score"`
}

func stateOf(sess *game.Session) roundState {
	return roundState{
		RoundID: sess.ID,
		Root:    sess.Root,
		Locale:  sess.Locale,
		Words:   sess.Words,
		Score:   sess.Score(),
	}
}

type newRoundReq struct {
	Root   string `json:"root"`   // optional fixed root (testing, shared links)
	Locale string `json:"locale"` // optional; server default otherwise
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	root := strings.TrimSpace(req.Root)
	if root == "" {
		root = s.lex.RandomRoot()
	}
	locale := req.Locale
	if locale == "" {
		locale = s.cfg.Words.Locale
	}
	if !s.lex.HasLocale(locale) {
		writeError(w, http.StatusBadRequest, "bad_locale")
		return
	}

	sess := game.NewSession(uuid.NewString(), root, locale)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.recordRoundStart(w, r, sess)

	writeJSON(w, http.StatusOK, stateOf(sess))
}

type guessReq struct {
	RoundID string `json:"roundId"`
	Word    string `json:"word"`
}

type guessRes struct {
	Accepted bool        `json:"accepted"`
	Word     string      `json:"word"`
	Reason   game.Reason `json:"reason,omitempty"`
	Title    string      `json:"title,omitempty"`
	Message  string      `json:"message,omitempty"`
	Score    int         `json:"score"`
	Words    []string    `json:"words"`
}

func verdictRes(sess *game.Session, v game.Verdict) guessRes {
	return guessRes{
		Accepted: v.Accepted(),
		Word:     v.Word,
		Reason:   v.Reason,
		Title:    v.Reason.Title(),
		Message:  v.Reason.Message(sess.Root),
		Score:    sess.Score(),
		Words:    sess.Words,
	}
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.RoundID == "" {
		writeError(w, http.StatusBadRequest, "missing_round_id")
		return
	}

	unlock := s.locks.lock(req.RoundID)
	defer unlock()

	sess, ok := s.loadRound(w, r, req.RoundID)
	if !ok {
		return
	}
	v := sess.SubmitGuess(s.engine(sess), req.Word)
	if v.Accepted() {
		if err := s.store.Save(r.Context(), sess); err != nil {
			log.Error().Err(err).Str("roundId", sess.ID).Msg("save round")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		s.recordWordFound(r, sess)
	}

	writeJSON(w, http.StatusOK, verdictRes(sess, v))
}

type restartReq struct {
	RoundID string `json:"roundId"`
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if err := decode(r, &req); err != nil || req.RoundID == "" {
		writeError(w, http.StatusBadRequest, "missing_round_id")
		return
	}

	unlock := s.locks.lock(req.RoundID)
	defer unlock()

	sess, ok := s.loadRound(w, r, req.RoundID)
	if !ok {
		return
	}
	sess.StartRound(s.lex.RandomRoot())
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Str("roundId", sess.ID).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.recordRoundStart(w, r, sess)

	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadRound(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// loadRound fetches a free-play session or writes the matching error response.
// Daily rounds share the store but are only reachable through /daily.
func (s *Server) loadRound(w http.ResponseWriter, r *http.Request, id string) (*game.Session, bool) {
	if isDailyRoundID(id) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("roundId", id).Msg("load round")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return sess, true
}

func (s *Server) recordRoundStart(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	owner := history.Owner{}
	if me := currentUser(r); me != nil {
		owner.UserID = me.ID
		if err := s.users.RoundStarted(r.Context(), me.ID); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump rounds played")
		}
	} else {
		owner.AnonymousID = s.ensureAnonID(w, r)
	}
	if err := s.history.Start(r.Context(), owner, sess.ID, sess.Root, sess.StartedAt); err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("insert round row")
	}
}

func (s *Server) recordWordFound(r *http.Request, sess *game.Session) {
	if err := s.history.SetScore(r.Context(), sess.ID, sess.StartedAt, sess.Score()); err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("update round score")
	}
	if me := currentUser(r); me != nil {
		if err := s.users.WordFound(r.Context(), me.ID, sess.Score()); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump words found")
		}
	}
}
