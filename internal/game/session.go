// internal/game/session.go
//
// Session holds the mutable state of one player's round: the root word and
// the accepted words, newest first. Score is always len(Words).
//
// A Session is not safe for concurrent use. Owners that share one across
// goroutines must serialize access themselves.

package game

import "time"

// Session is one player's game across rounds.
type Session struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Words     []string  `json:"words"` // newest first
	Locale    string    `json:"locale"`
	StartedAt time.Time `json:"startedAt"`
}

// NewSession creates a session and starts its first round with root.
func NewSession(id, root, locale string) *Session {
	if locale == "" {
		locale = DefaultLocale
	}
	s := &Session{ID: id, Locale: locale}
	s.StartRound(root)
	return s
}

// StartRound replaces the root word and forgets every accepted word.
// The root is normalized with the session locale, as candidates are.
func (s *Session) StartRound(root string) {
	s.Root = Normalize(root, s.Locale)
	s.Words = []string{}
	s.StartedAt = time.Now().UTC()
}

// SubmitGuess validates candidate with e. Accepted words are prepended to
// Words; rejections leave the session untouched.
func (s *Session) SubmitGuess(e *Engine, candidate string) Verdict {
	v := e.Validate(candidate, s.Root, s.Words)
	if v.Accepted() {
		s.Words = append([]string{v.Word}, s.Words...)
	}
	return v
}

// Score is the number of accepted words this round.
func (s *Session) Score() int { return len(s.Words) }
