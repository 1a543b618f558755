package inputval

import (
	"testing"

	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"player address", "karim.benali@league.org", true},
		{"plus tag", "coach+u12@league.org", true},
		{"country domain", "dana@club.co.uk", true},
		{"single label domain", "admin@localhost", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"no at", "karim.benali", false},
		{"no domain", "karim@", false},
		{"no local", "@league.org", false},
		{"two ats", "karim@home@league.org", false},
		{"leading dot", ".karim@league.org", false},
		{"trailing dot", "karim.@league.org", false},
		{"doubled dot", "karim..benali@league.org", false},
		{"domain leading dot", "karim@.league.org", false},
		{"domain doubled dot", "karim@league..org", false},
		{"display name", "Karim Benali <karim@league.org>", false},
		{"inner space", "karim benali@league.org", false},
		{"tab", "karim@league\t.org", false},
		{"list", "a@league.org,b@league.org", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

// Updates and renames validate the normalized address, so padding and
// case from admin forms must not make a good address fail.
func TestIsValidEmail_AfterNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"  Karim.Benali@League.ORG ", "karim.benali@league.org", true},
		{"\tDANA@CLUB.CO.UK\n", "dana@club.co.uk", true},
		{"  ", "", false},
		{" Karim Benali@league.org ", "karim benali@league.org", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := normalize.Email(tt.raw)
			if got != tt.want {
				t.Fatalf("normalize.Email(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if ok := IsValidEmail(got); ok != tt.ok {
				t.Errorf("IsValidEmail(%q) = %v, want %v", got, ok, tt.ok)
			}
		})
	}
}
