// Package normalize holds the canonical forms used to compare account data
// copied across collections.
package normalize

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Email lowercases and trims. Two records whose emails differ only in case
// or surrounding whitespace refer to the same identity.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses inner whitespace. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NameKey is the comparison form of a person's name: diacritics stripped,
// lowercased, and everything except a-z and 0-9 removed.
func NameKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone formats a number as E.164 when it parses as a valid number for
// region. Anything unparseable is returned trimmed but otherwise untouched,
// since league data holds plenty of partial numbers.
func Phone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = "US"
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
