// internal/words/words.go
//
// Word resources for the game.
//
// Responsibilities:
//   - Load the root word list and the dictionary from configured files, or fall
//     back to the lists embedded in the assets package.
//   - Pick random root words, with a configurable default when the list is empty.
//   - Answer dictionary lookups per locale (Lexicon implements game.SpellChecker).
//
// Files are newline delimited, one word per line. Lines are trimmed and
// lowercased; blank lines and lines starting with '#' are skipped.
//
// A configured file that cannot be read is a startup error. An empty root list
// is not: RandomRoot returns the fallback root instead.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/assets"
)

// DefaultRoot is used when no root words are available.
const DefaultRoot = "silkworm"

// ErrEmptyDictionary is returned by Load when the dictionary has no words.
var ErrEmptyDictionary = errors.New("words: dictionary is empty")

// Options selects where word lists come from.
type Options struct {
	RootsFile    string // empty: embedded start.txt
	DictFile     string // empty: embedded dictionary.txt
	Locale       string // language of the dictionary, "en" if empty
	FallbackRoot string // DefaultRoot if empty
}

// Lexicon holds the root words and a dictionary per language.
// It is read-only after Load and safe for concurrent use.
type Lexicon struct {
	roots    []string
	dicts    map[language.Base]map[string]struct{}
	fallback string
}

// Load reads the word lists described by opts.
func Load(opts Options) (*Lexicon, error) {
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	base, ok := baseOf(locale)
	if !ok {
		return nil, fmt.Errorf("words: unknown locale %q", locale)
	}

	roots, err := readList(opts.RootsFile, assets.RootList)
	if err != nil {
		return nil, fmt.Errorf("words: load roots: %w", err)
	}
	dict, err := readList(opts.DictFile, assets.DictionaryList)
	if err != nil {
		return nil, fmt.Errorf("words: load dictionary: %w", err)
	}
	if len(dict) == 0 {
		return nil, ErrEmptyDictionary
	}

	l := New(roots, dict, opts.FallbackRoot)
	if base != english {
		// New files the words under English; move them to the configured language.
		l.dicts = map[language.Base]map[string]struct{}{base: l.dicts[english]}
	}
	if len(roots) == 0 {
		log.Warn().Str("fallback", l.fallback).Msg("root word list is empty")
	}
	return l, nil
}

var english, _ = language.English.Base()

// New builds an English Lexicon from in-memory lists.
// Root words are always dictionary words.
func New(roots, dict []string, fallback string) *Lexicon {
	if fallback == "" {
		fallback = DefaultRoot
	}
	set := toSet(dict)
	for _, r := range roots {
		set[r] = struct{}{}
	}
	return &Lexicon{
		roots:    roots,
		dicts:    map[language.Base]map[string]struct{}{english: set},
		fallback: strings.ToLower(fallback),
	}
}

// RandomRoot returns a random root word, or the fallback when there are none.
func (l *Lexicon) RandomRoot() string {
	return PickRandomRoot(l.roots, l.fallback)
}

// Roots returns the loaded root words. The slice must not be modified.
func (l *Lexicon) Roots() []string { return l.roots }

// IsKnownWord reports whether word is in the dictionary for locale.
// Locales match on language only: "en", "en-US" and "en_GB" share a list.
func (l *Lexicon) IsKnownWord(word, locale string) bool {
	base, ok := baseOf(locale)
	if !ok {
		return false
	}
	set, ok := l.dicts[base]
	if !ok {
		return false
	}
	_, ok = set[strings.ToLower(word)]
	return ok
}

// HasLocale reports whether a dictionary is loaded for locale's language.
func (l *Lexicon) HasLocale(locale string) bool {
	base, ok := baseOf(locale)
	if !ok {
		return false
	}
	_, ok = l.dicts[base]
	return ok
}

// Stats returns counts of loaded words: (roots, dictionary).
func (l *Lexicon) Stats() (rootCount int, dictCount int) {
	for _, set := range l.dicts {
		dictCount += len(set)
	}
	return len(l.roots), dictCount
}

// PickRandomRoot returns a cryptographically random element of list,
// or fallback when list is empty.
func PickRandomRoot(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return list[0]
	}
	return list[n.Int64()]
}

func baseOf(locale string) (language.Base, bool) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Base{}, false
	}
	base, _ := tag.Base()
	return base, true
}

// readList reads path, or calls embedded when path is empty.
func readList(path string, embedded func() ([]string, error)) ([]string, error) {
	if path == "" {
		return embedded()
	}
	return readWordFile(path)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ScanWords(f)
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}
