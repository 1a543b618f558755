package inputval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/dalemusser/leaguehub/internal/app/system/limits"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Error is a client error: malformed JSON or failed field rules.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

// DecodeJSON decodes the request body into dest and runs its validate tags.
func DecodeJSON(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	dec := json.NewDecoder(io.LimitReader(r.Body, limits.MaxAdminBodySize))
	if err := dec.Decode(dest); err != nil {
		return &Error{Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return Struct(dest)
}

// Struct runs validate tags on an already decoded value.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = message(fe)
		}
		return &Error{Message: "missing or invalid parameters", Fields: fields}
	}
	return &Error{Message: err.Error()}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}
