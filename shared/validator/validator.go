package validator

import (
	"encoding/json"
	"errors"
	"giftlist/shared/constant"
	"giftlist/shared/failure"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate *val.Validate

// registerMimetypeValidation matches a content type against the space separated list in the tag param.
func registerMimetypeValidation(field val.FieldLevel) bool {
	contentType, ok := field.Field().Interface().(string)
	if !ok || contentType == constant.Empty {
		return false
	}

	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

// registerFileSizeValidation checks a byte count against the megabyte limit in the tag param.
func registerFileSizeValidation(field val.FieldLevel) bool {
	var fileSize int64

	switch field.Field().Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fileSize = field.Field().Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		fileSize = int64(field.Field().Uint()) //nolint:gosec
	default:
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return fileSize <= int64(maxSizeMB*constant.BytesPerMegabyte)
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0] //nolint:mnd
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	err := validate.RegisterValidation("notblank", func(fl val.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return !fl.Field().IsZero()
		}

		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("mimetypes", registerMimetypeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("maxfilesize", registerFileSizeValidation)
	if err != nil {
		panic(err)
	}
}

// Decode reads a JSON body into data without validating it. Parser errors are logged and
// answered with failure.InvalidBody, a body cut by http.MaxBytesReader with failure.PayloadTooLarge.
func Decode[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return failure.PayloadTooLarge
	}

	log.Debug().Err(err).Msg("failed to decode request body")

	return failure.InvalidBody
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

// ValidateStruct reports every violated rule of data in a single bad request failure.
func ValidateStruct[T any](data *T) error {
	return failure.Validation(Violations(data)) //nolint:wrapcheck
}

// Violations lists one message per violated rule of data. An empty list means data is valid.
func Violations[T any](data *T) []string {
	return Messages(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return failure.Validation(Messages(validate.Var(field, tag))) //nolint:wrapcheck
}
