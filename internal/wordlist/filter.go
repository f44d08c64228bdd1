package wordlist

import (
	"unicode/utf8"

	"github.com/samber/lo"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// MaxRunes keeps words no longer than n runes.
func MaxRunes(n int) FilterFunc {
	return func(word string) bool {
		return utf8.RuneCountInString(word) <= n
	}
}

// Filter trims and deduplicates words, keeping first occurrences that pass
// every filter.
func Filter(words []string, keep ...FilterFunc) []string {
	out := lo.Uniq(trimmed(words))
	for _, f := range keep {
		out = lo.Filter(out, func(w string, _ int) bool {
			return f(w)
		})
	}
	return out
}
