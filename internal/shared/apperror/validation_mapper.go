package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// employee_id -> Employee Id
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a binding failure into a client error naming the
// first offending field. Field names come from json tags, see validation.Init.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		case "notblank":
			return InvalidFieldf("%s must not be blank", humanReadableField)
		case "employee_id":
			return InvalidFieldf("%s must contain only letters, numbers, underscores, and hyphens", humanReadableField)
		case "email":
			return InvalidFieldf("%s must be a valid email address", humanReadableField)
		case "oneof":
			return InvalidFieldf("%s must be one of: %s", humanReadableField, strings.ReplaceAll(e.Param(), " ", ", "))
		case "datetime":
			return InvalidFieldf("%s must be a valid date (YYYY-MM-DD)", humanReadableField)
		case "max":
			return InvalidFieldf("%s must be at most %s characters", humanReadableField, e.Param())
		case "min":
			return InvalidFieldf("%s must be at least %s", humanReadableField, e.Param())
		default:
			return InvalidField(humanReadableField)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
