package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/phrazzld/user-api/internal/api/shared"
	"github.com/phrazzld/user-api/internal/platform/logger"
)

// ValidationMessages are the two client-facing messages a body check can
// produce.
type ValidationMessages struct {
	// Required is sent when a field tagged `required` is absent, empty or zero.
	Required string
	// Format is sent for malformed JSON, wrong JSON types and every other
	// failed rule.
	Format string
}

// ValidateBody checks the JSON request body before the handler runs. Fields
// tagged `validate:"required"` must be present and truthy (not null, "", 0 or
// false) regardless of their JSON type; only then is the body decoded into a
// T and checked against its remaining `validate` tags. The decoded T is
// stored in the request context for the handler (see shared.ValidatedBody).
// On failure it answers 400 and the chain stops.
func ValidateBody[T any](msgs ValidationMessages) func(http.Handler) http.Handler {
	required := requiredJSONFields(reflect.TypeOf((*T)(nil)).Elem())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(msg, reason string, err error) {
				logger.FromContext(r.Context()).
					Debug("request body rejected", "reason", reason, "error", err)
				shared.RespondWithError(w, r, http.StatusBadRequest, msg, nil)
			}

			raw, err := io.ReadAll(r.Body)
			if err != nil {
				reject(msgs.Format, "read", err)
				return
			}

			// An empty body has no fields at all.
			if len(bytes.TrimSpace(raw)) == 0 {
				reject(msgs.Required, "empty", nil)
				return
			}

			var fields map[string]json.RawMessage
			if err := json.Unmarshal(raw, &fields); err != nil {
				reject(msgs.Format, "decode", err)
				return
			}
			for _, name := range required {
				if !truthy(fields[name]) {
					reject(msgs.Required, "missing "+name, nil)
					return
				}
			}

			var body T
			if err := json.Unmarshal(raw, &body); err != nil {
				reject(msgs.Format, "decode", err)
				return
			}

			if err := shared.ValidateRequest(&body); err != nil {
				msg := msgs.Format
				if isRequiredFailure(err) {
					msg = msgs.Required
				}
				reject(msg, "validate", err)
				return
			}

			ctx := shared.WithValidatedBody(r.Context(), body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requiredJSONFields lists the JSON names of t's fields tagged `required`.
func requiredJSONFields(t reflect.Type) []string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		rules := strings.Split(f.Tag.Get("validate"), ",")
		if !slices.Contains(rules, "required") {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}

// truthy reports whether a raw JSON value is present and not one of
// null, false, "" or a zero number.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	if c := v[0]; c == '-' || (c >= '0' && c <= '9') {
		n, err := strconv.ParseFloat(string(v), 64)
		return err != nil || n != 0
	}
	return true
}

func isRequiredFailure(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}
