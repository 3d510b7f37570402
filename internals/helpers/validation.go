package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorsToMap flattens validator.v10 errors into the per-field
// shape JsonValidationError emits.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["body"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		field := toSnake(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " is required"
		case "email":
			msg = "invalid email format"
		case "min":
			msg = field + " must be at least " + fe.Param()
		case "max":
			msg = field + " must be at most " + fe.Param()
		case "oneof":
			msg = field + " must be one of " + fe.Param()
		case "gt":
			msg = field + " must be greater than " + fe.Param()
		default:
			msg = field + " is invalid"
		}
		out[field] = append(out[field], msg)
	}
	return out
}

func toSnake(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if r >= 'A' && r <= 'Z' {
			prevUpper := i > 0 && rs[i-1] >= 'A' && rs[i-1] <= 'Z'
			nextLower := i+1 < len(rs) && rs[i+1] >= 'a' && rs[i+1] <= 'z'
			// break before a new word, but keep acronym runs together
			if i > 0 && (!prevUpper || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
