package forms

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
)

// FieldErrors maps a field name to the message shown next to its input.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {

	fields := make([]string, 0, len(f))
	for field, message := range f {
		fields = append(fields, field+": "+message)
	}

	return strings.Join(fields, ", ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in its errors follow the mapstructure tags.
func Validator() *validator.Validate {

	validateOnce.Do(func() {

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {

			name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
			if name == "" || name == "-" {
				return field.Name
			}

			return name
		})
	})

	return validate
}

// Decode turns submitted form values into a record, normalizes it and validates it.
// Invalid fields are reported as FieldErrors; values that cannot be converted at all fail with ValidationFailedError.
func Decode[R any](values url.Values) (R, FieldErrors, error) {

	var record R
	return DecodeInto(values, record)
}

// DecodeInto is Decode starting from record, so fields missing from the form keep their value.
func DecodeInto[R any](values url.Values, record R) (R, FieldErrors, error) {

	input := make(map[string]any, len(values))
	for key, value := range values {
		if len(value) > 0 {
			input[key] = strings.TrimSpace(value[len(value)-1])
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(decimalDecodeHook, mapstructure.StringToSliceHookFunc(",")),
		Result:           &record,
	})
	if err != nil {
		return record, nil, errors.UnknownError.New(err)
	}

	if err := decoder.Decode(input); err != nil {
		return record, nil, errors.ValidationFailedError.New(err.Error())
	}

	record = Normalize(record)

	return record, Validate(record), nil
}

// Normalize derives computed fields when the record knows how to.
func Normalize[R any](record R) R {

	if normalizer, ok := any(record).(objects.Normalizer[R]); ok {
		return normalizer.Normalize()
	}

	return record
}

// Validate checks the validate tags of record. It returns nil when every field passes.
func Validate(record any) FieldErrors {

	err := Validator().Struct(record)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": err.Error()}
	}

	fields := make(FieldErrors, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = message(fieldError)
	}

	return fields
}

// AsError converts field errors into the coded validation error, nil when there are none.
func (f FieldErrors) AsError() error {

	if len(f) == 0 {
		return nil
	}

	return errors.ValidationFailedError.New(f.Error())
}

func message(fieldError validator.FieldError) string {

	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fieldError.Param())
		}
		return fmt.Sprintf("Must be at least %s", fieldError.Param())
	case "max":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fieldError.Param())
		}
		return fmt.Sprintf("Must be at most %s", fieldError.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("Must be %s or more", fieldError.Param())
	case "lte":
		return fmt.Sprintf("Must be %s or less", fieldError.Param())
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fieldError.Param())
	case "eqfield":
		return "Does not match"
	case "nefield":
		return "Must be different from the current value"
	}

	return fmt.Sprintf("Failed the %q rule", fieldError.Tag())
}

func decimalDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {

	if to != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		if v == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	}

	return data, nil
}
