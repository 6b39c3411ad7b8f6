// Package form turns gin binding failures into messages for the form banner.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Messages describes every problem in err, one line per field.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, message(fe))
		}
		return msgs
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return []string{fmt.Sprintf("%q is not a valid number", numErr.Num)}
	}
	return []string{"The form could not be read. Please check your input."}
}

// Summary joins Messages into one banner line.
func Summary(err error) string {
	return strings.Join(Messages(err), "; ")
}

func message(fe validator.FieldError) string {
	field := Humanize(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "hexcolor":
		return field + " must be a hex color like #1a2b3c"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// Humanize turns a Go field name like "SenderName" into "sender name".
func Humanize(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
