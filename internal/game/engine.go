// internal/game/engine.go
//
// Validation engine for word scramble guesses.
// Responsibilities:
//   - Normalize a raw candidate (locale-aware lowercase, trimmed).
//   - Apply the rejection checks in a fixed order, stopping at the first failure:
//     too short → same as root → already used → not possible → not real.
//
// The engine never mutates anything; callers apply accepted words themselves.
package game

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MinLength is the shortest accepted word, in letters.
	MinLength = 3

	// DefaultLocale is used when an engine is built without one.
	DefaultLocale = "en"
)

// Engine validates candidates against a root word.
type Engine struct {
	checker SpellChecker
	locale  string
}

// NewEngine builds an engine that consults checker for dictionary membership.
// An empty or unparsable locale falls back to DefaultLocale for case folding;
// the locale string itself is passed through to the checker unchanged.
func NewEngine(checker SpellChecker, locale string) *Engine {
	if locale == "" {
		locale = DefaultLocale
	}
	return &Engine{checker: checker, locale: locale}
}

// Locale returns the locale passed to the spell checker.
func (e *Engine) Locale() string { return e.locale }

// Normalize lowercases s for the engine's locale and trims surrounding whitespace.
func (e *Engine) Normalize(s string) string { return Normalize(s, e.locale) }

// Normalize lowercases s with the case rules of locale and trims surrounding
// whitespace. Unparsable locales use English rules.
func Normalize(s, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(tag).String(strings.TrimSpace(s))
}

// Validate checks candidate against root and the already accepted words.
func (e *Engine) Validate(candidate, root string, used []string) Verdict {
	word := e.Normalize(candidate)
	root = e.Normalize(root)

	switch {
	case utf8.RuneCountInString(word) < MinLength:
		return Verdict{Word: word, Reason: ReasonTooShort}
	case word == root:
		return Verdict{Word: word, Reason: ReasonSameAsRoot}
	case !isOriginal(word, used):
		return Verdict{Word: word, Reason: ReasonAlreadyUsed}
	case !IsPossible(word, root):
		return Verdict{Word: word, Reason: ReasonNotPossible}
	case e.checker == nil || !e.checker.IsKnownWord(word, e.locale):
		return Verdict{Word: word, Reason: ReasonNotReal}
	}
	return Verdict{Word: word}
}

// IsPossible reports whether word can be spelled from the letters of root,
// using each letter of root at most once.
//
// Each letter of word consumes the first matching letter still left in a
// working copy of root; a letter with nothing left to consume fails the check.
func IsPossible(word, root string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := indexRune(pool, r)
		if i < 0 {
			return false
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return true
}

// isOriginal reports whether word is absent from used.
func isOriginal(word string, used []string) bool {
	for _, u := range used {
		if u == word {
			return false
		}
	}
	return true
}

func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}
