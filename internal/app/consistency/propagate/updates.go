package propagate

import (
	"github.com/dalemusser/leaguehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
)

// Updates is the permitted set of account fields. A nil field is absent
// and never written.
type Updates struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Position     *string `json:"position,omitempty"`
	JerseyNumber *int    `json:"jerseyNumber,omitempty" validate:"omitempty,min=0,max=999"`
	Nickname     *string `json:"nickname,omitempty"`
	BirthDate    *string `json:"birthDate,omitempty"`
	Height       *string `json:"height,omitempty"`
	TeamName     *string `json:"teamName,omitempty"`
}

// clean strips markup from free text, normalizes email and phone, and
// drops fields left empty.
func (u Updates) clean(phoneRegion string) Updates {
	text := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := normalize.Name(htmlsanitize.PlainText(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	out := Updates{
		FirstName:    text(u.FirstName),
		LastName:     text(u.LastName),
		Position:     text(u.Position),
		Nickname:     text(u.Nickname),
		BirthDate:    text(u.BirthDate),
		Height:       text(u.Height),
		TeamName:     text(u.TeamName),
		JerseyNumber: u.JerseyNumber,
	}
	if u.Email != nil {
		if v := normalize.Email(*u.Email); v != "" {
			out.Email = &v
		}
	}
	if p := text(u.Phone); p != nil {
		v := normalize.Phone(*p, phoneRegion)
		out.Phone = &v
	}
	return out
}

// Fields returns the present fields keyed by their stored names.
func (u Updates) Fields() map[string]any {
	m := make(map[string]any)
	str := func(k string, v *string) {
		if v != nil {
			m[k] = *v
		}
	}
	str("firstName", u.FirstName)
	str("lastName", u.LastName)
	str("email", u.Email)
	str("phone", u.Phone)
	str("position", u.Position)
	str("nickname", u.Nickname)
	str("birthDate", u.BirthDate)
	str("height", u.Height)
	str("teamName", u.TeamName)
	if u.JerseyNumber != nil {
		m["jerseyNumber"] = *u.JerseyNumber
	}
	return m
}

// Empty reports whether no field is present.
func (u Updates) Empty() bool { return len(u.Fields()) == 0 }

func (u Updates) nameChanged() bool { return u.FirstName != nil || u.LastName != nil }

// pick copies the present fields named in keys.
func pick(fields map[string]any, keys ...string) map[string]any {
	out := make(map[string]any)
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			out[k] = v
		}
	}
	return out
}
