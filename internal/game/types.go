// internal/game/types.go
//
// Core type definitions for the word scramble engine.
// Defines:
//   - Reason: why a candidate was rejected (closed set).
//   - Verdict: outcome of validating one candidate.
//   - SpellChecker: the dictionary oracle the engine consults last.

package game

import "fmt"

// Reason identifies why a candidate was rejected.
// The zero value means the candidate was accepted.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonTooShort    Reason = "too_short"
	ReasonSameAsRoot  Reason = "same_as_root"
	ReasonAlreadyUsed Reason = "already_used"
	ReasonNotPossible Reason = "not_possible"
	ReasonNotReal     Reason = "not_real"
)

// Reasons lists every rejection reason in check order.
var Reasons = []Reason{
	ReasonTooShort,
	ReasonSameAsRoot,
	ReasonAlreadyUsed,
	ReasonNotPossible,
	ReasonNotReal,
}

// Title is the short heading shown to the player for a rejection.
func (r Reason) Title() string {
	switch r {
	case ReasonTooShort:
		return "Not accepted"
	case ReasonSameAsRoot:
		return "Same word"
	case ReasonAlreadyUsed:
		return "Word already used"
	case ReasonNotPossible:
		return "Word not possible"
	case ReasonNotReal:
		return "Word not recognized"
	}
	return ""
}

// Message is the explanation shown under Title. Some messages mention the root word.
func (r Reason) Message(root string) string {
	switch r {
	case ReasonTooShort:
		return fmt.Sprintf("Word should contain at least %d letters", MinLength)
	case ReasonSameAsRoot:
		return "You can't just repeat the starting word"
	case ReasonAlreadyUsed:
		return "Be more original"
	case ReasonNotPossible:
		return fmt.Sprintf("You can't spell that word from '%s'", root)
	case ReasonNotReal:
		return "You can't just make them up, you know"
	}
	return ""
}

// Verdict is the result of validating a single candidate.
// Word is the normalized candidate, whatever the outcome.
type Verdict struct {
	Word   string `json:"word"`
	Reason Reason `json:"reason,omitempty"`
}

// Accepted reports whether the candidate passed every check.
func (v Verdict) Accepted() bool { return v.Reason == ReasonNone }

// SpellChecker decides whether a word exists in a language's dictionary.
// Implementations must be side-effect free.
type SpellChecker interface {
	IsKnownWord(word, locale string) bool
}

// SpellCheckerFunc adapts a plain function to SpellChecker.
type SpellCheckerFunc func(word, locale string) bool

func (f SpellCheckerFunc) IsKnownWord(word, locale string) bool { return f(word, locale) }
