// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/socialpulse/internal/models"
)

var (
	shared     *validator.Validate
	sharedOnce sync.Once
)

// GetValidator returns the process-wide validator. Field names are reported
// by json tag and the "platform" tag is registered.
func GetValidator() *validator.Validate {
	sharedOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		//nolint:errcheck // only fails for an empty tag
		_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
			_, ok := models.ParsePlatform(fl.Field().String())
			return ok
		})
		shared = v
	})
	return shared
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// ValidationError is one rejected field.
type ValidationError struct {
	field   string
	tag     string
	value   interface{}
	message string
}

func (e *ValidationError) Field() string      { return e.field }
func (e *ValidationError) Tag() string        { return e.tag }
func (e *ValidationError) Value() interface{} { return e.value }
func (e *ValidationError) Error() string      { return e.message }

// RequestValidationError holds every rejected field of a request, in
// struct order.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the rejected fields.
func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

func (ve *RequestValidationError) messages() []string {
	out := make([]string, len(ve.errors))
	for i := range ve.errors {
		out[i] = ve.errors[i].message
	}
	return out
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	return strings.Join(ve.messages(), "; ")
}

// ToAPIError renders the failures as a VALIDATION_ERROR. A single failure
// reports field, tag and value; several report a "fields" list.
func (ve *RequestValidationError) ToAPIError() *models.APIError {
	apiErr := &models.APIError{Code: models.ErrCodeValidation, Message: "Validation failed"}

	switch len(ve.errors) {
	case 0:
	case 1:
		e := ve.errors[0]
		apiErr.Message = e.message
		apiErr.Details = map[string]interface{}{"field": e.field, "tag": e.tag, "value": e.value}
	default:
		fields := make([]map[string]interface{}, 0, len(ve.errors))
		for _, e := range ve.errors {
			fields = append(fields, map[string]interface{}{"field": e.field, "tag": e.tag, "message": e.message})
		}
		apiErr.Message = strings.Join(ve.messages(), "; ")
		apiErr.Details = map[string]interface{}{"fields": fields}
	}
	return apiErr
}

// ValidateStruct returns nil when s passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []ValidationError{{
			field: "unknown", tag: "unknown", message: err.Error(),
		}}}
	}

	out := &RequestValidationError{errors: make([]ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.errors = append(out.errors, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			value:   fe.Value(),
			message: describe(fe),
		})
	}
	return out
}

var tagMessages = map[string]func(field, param, unit string) string{
	"required":        func(f, _, _ string) string { return f + " is required" },
	"numeric":         func(f, _, _ string) string { return f + " must be numeric" },
	"alphanumunicode": func(f, _, _ string) string { return f + " may only contain letters and digits" },
	"platform": func(f, _, _ string) string {
		return f + " must be one of: instagram, tiktok, youtube, facebook, twitter, all"
	},
	"oneof":    func(f, p, _ string) string { return fmt.Sprintf("%s must be one of: %s", f, p) },
	"gte":      func(f, p, _ string) string { return fmt.Sprintf("%s must be greater than or equal to %s", f, p) },
	"lte":      func(f, p, _ string) string { return fmt.Sprintf("%s must be less than or equal to %s", f, p) },
	"datetime": func(f, p, _ string) string { return fmt.Sprintf("%s must be a date in the layout %s", f, p) },
	"min":      func(f, p, u string) string { return fmt.Sprintf("%s must be at least %s%s", f, p, u) },
	"max":      func(f, p, u string) string { return fmt.Sprintf("%s must be at most %s%s", f, p, u) },
}

func describe(fe validator.FieldError) string {
	msg, ok := tagMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
	var unit string
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	}
	return msg(fe.Field(), fe.Param(), unit)
}
