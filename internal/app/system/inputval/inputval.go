// Package inputval validates request input for the admin API.
package inputval

import (
	"strings"
	"unicode"
)

// IsValidEmail performs a structural check on a bare address: one "@",
// non-empty local and domain parts, no whitespace, no display-name syntax,
// and no leading, trailing or doubled dots on either side.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || strings.ContainsAny(email, "<>()[]\\,;:\"") {
		return false
	}
	for _, r := range email {
		if unicode.IsSpace(r) {
			return false
		}
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if strings.Contains(local, "@") {
		return false
	}
	return validDotted(local) && validDotted(domain)
}

func validDotted(s string) bool {
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	return !strings.Contains(s, "..")
}
