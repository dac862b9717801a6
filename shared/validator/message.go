package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"notblank": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"gt":       "{field} must be greater than {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"url":      "{field} must be a valid URL",

		"mimetypes":   "file type not allowed",
		"maxfilesize": "file must not exceed {param} MB",
	}

	stringMessages = map[string]string{
		"min": "{field} must be at least {param} characters",
		"max": "{field} must be at most {param} characters",
	}
)

// Messages turns a validation error into one human readable message per violated rule,
// in field order. A nil error yields nil.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []string{err.Error()}
	}

	result := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		errStr := messages[valErr.Tag()]

		if valErr.Kind() == reflect.String {
			if strMsg, ok := stringMessages[valErr.Tag()]; ok {
				errStr = strMsg
			}
		}

		if errStr == "" {
			result = append(result, valErr.Error())

			continue
		}

		errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
		errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

		result = append(result, errStr)
	}

	return result
}
