package query

import (
	"unicode/utf8"

	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"

	"github.com/mnohosten/yomu/pkg/ftserr"
)

// AutomatonFactory picks how a query term resolves against the term
// index. A nil automaton with a nil error means: do an exact FST
// lookup. A non-nil automaton means: stream every dictionary term it
// accepts.
type AutomatonFactory func(term string) (vellum.Automaton, error)

// fuzzyShortLen is the character-count threshold at or below which
// DefaultAutomatonFactory builds a distance-0 automaton (equivalent
// to an exact match, but resolved through the same code path as a
// fuzzy one) rather than a distance-1 automaton.
const fuzzyShortLen = 4

// DefaultAutomatonFactory builds a Levenshtein automaton for every
// term: distance 0 for short terms (<=4 characters), distance 1
// otherwise.
func DefaultAutomatonFactory(term string) (vellum.Automaton, error) {
	d := uint8(1)
	if utf8.RuneCountInString(term) <= fuzzyShortLen {
		d = 0
	}
	aut, err := levenshtein.NewLevenshteinAutomaton(term, d)
	if err != nil {
		return nil, ftserr.Wrap(ftserr.Fst, "query.DefaultAutomatonFactory", err)
	}
	return aut, nil
}

// ExactAutomatonFactory always does an exact FST lookup, bypassing
// fuzzy matching entirely.
func ExactAutomatonFactory(term string) (vellum.Automaton, error) {
	return nil, nil
}
