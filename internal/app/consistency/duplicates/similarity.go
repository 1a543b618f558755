package duplicates

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
)

// Levenshtein is the classic edit distance over runes: insertion,
// deletion and substitution all cost 1.
func Levenshtein(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity scores two display names in [0, 1]. Both are reduced to
// their name keys first. The denominator is the key length of whichever
// name is longer as typed, ties going to the longer key; when that key is
// empty the longer key is used instead. Similarity(a, b) == Similarity(b, a)
// and Similarity(x, x) == 1.
func Similarity(a, b string) float64 {
	ka, kb := normalize.NameKey(a), normalize.NameKey(b)
	la, lb := utf8.RuneCountInString(ka), utf8.RuneCountInString(kb)

	longer := la
	switch ra, rb := utf8.RuneCountInString(a), utf8.RuneCountInString(b); {
	case rb > ra:
		longer = lb
	case rb == ra && lb > la:
		longer = lb
	}
	if la == 0 && lb == 0 {
		return 1.0
	}
	if longer == 0 {
		longer = max(la, lb)
	}
	s := float64(longer-Levenshtein(ka, kb)) / float64(longer)
	if s < 0 {
		return 0
	}
	return s
}
