package docs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String reads a string field. Numbers are formatted; anything else reads "".
func String(fields map[string]any, key string) string {
	switch v := GetPath(fields, key).(type) {
	case string:
		return v
	case int, int32, int64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Int reads an integer field stored as any numeric type or a numeric string.
func Int(fields map[string]any, key string) (int, bool) {
	switch v := GetPath(fields, key).(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Map reads a nested map field.
func Map(fields map[string]any, key string) map[string]any {
	m, _ := GetPath(fields, key).(map[string]any)
	return m
}

// Slice reads an array field. Arrays of maps are returned as []any so
// callers can treat every backend the same way.
func Slice(fields map[string]any, key string) []any {
	switch v := GetPath(fields, key).(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	default:
		return nil
	}
}

// GetPath resolves a dotted path through nested maps.
func GetPath(fields map[string]any, path string) any {
	if fields == nil {
		return nil
	}
	cur := fields
	parts := strings.Split(path, ".")
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return v
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}

// SetPath assigns a dotted path, creating intermediate maps as needed.
func SetPath(fields map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := fields
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// Equal compares two field values, treating all numeric types alike.
func Equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case nil:
		return b == nil
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Clone deep-copies a field map.
func Clone(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

// CloneSlice deep-copies an array value.
func CloneSlice(in []any) []any {
	if in == nil {
		return nil
	}
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		return CloneSlice(t)
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Clone(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// plain converts driver-specific containers (bson.M, bson.A, bson.D) and
// scalar wrappers into plain Go maps, slices and values.
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case int32:
		return int64(t)
	default:
		return v
	}
}

// plainFields is plain for a top-level document.
func plainFields(m map[string]any) map[string]any {
	out, _ := plain(m).(map[string]any)
	if out == nil {
		out = make(map[string]any)
	}
	return out
}
