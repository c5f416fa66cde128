// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/listenwell/internal/analytics"
)

// Error codes produced by ToAPIError.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidRange = "INVALID_RANGE"
)

// rangeTag is the custom tag for symbolic range fields. Its parameter names
// the scope: "activity" (default) or "calendar".
const rangeTag = "listenrange"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule on one request field.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   any
	Message string
}

// RequestValidationError collects every FieldError from one struct.
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError without importing the models package.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the failures to a response error. The code is
// INVALID_RANGE when any failure is on a range field.
func (ve *RequestValidationError) ToAPIError() *APIError {
	code := CodeValidation
	for _, f := range ve.Fields {
		if f.Tag == rangeTag {
			code = CodeInvalidRange
			break
		}
	}

	switch len(ve.Fields) {
	case 0:
		return &APIError{Code: code, Message: "Validation failed"}
	case 1:
		f := ve.Fields[0]
		return &APIError{
			Code:    code,
			Message: f.Message,
			Details: map[string]any{"field": f.Field, "tag": f.Tag, "value": f.Value},
		}
	}

	fields := make([]map[string]any, len(ve.Fields))
	messages := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = map[string]any{"field": f.Field, "tag": f.Tag, "message": f.Message}
		messages[i] = f.Field + ": " + f.Message
	}
	return &APIError{
		Code:    code,
		Message: strings.Join(messages, "; "),
		Details: map[string]any{"fields": fields},
	}
}

// GetValidator returns the shared validator with the listenrange tag registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their query parameter names.
		validate.RegisterTagNameFunc(jsonFieldName)
		// Registration only fails for an empty tag or a nil func.
		_ = validate.RegisterValidation(rangeTag, validateRange)
	})
	return validate
}

// ValidateStruct validates s and returns nil or every failed rule.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{Fields: []FieldError{{
			Field: "unknown", Tag: "unknown", Message: err.Error(),
		}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return &RequestValidationError{Fields: out}
}

// jsonFieldName returns the json tag name of fld, or its Go name when untagged.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func scopeOf(param string) analytics.Scope {
	if param == "calendar" {
		return analytics.ScopeCalendar
	}
	return analytics.ScopeActivity
}

// validateRange accepts a range tag valid in the scope named by the tag
// parameter. Empty values pass; pair with required when a tag is mandatory.
func validateRange(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := analytics.ParseRange(value, scopeOf(fl.Param()))
	return err == nil
}

// messages maps tags to templates; %[1]s is the field and %[2]s the parameter.
var messages = map[string]string{
	"required": "%[1]s is required",
	"timezone": "%[1]s must be an IANA timezone name such as Europe/London",
	"oneof":    "%[1]s must be one of: %[2]s",
	"gte":      "%[1]s must be greater than or equal to %[2]s",
	"lte":      "%[1]s must be less than or equal to %[2]s",
	"min":      "%[1]s must be at least %[2]s",
	"max":      "%[1]s must be at most %[2]s",
}

func message(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tag == rangeTag {
		return fmt.Sprintf("%s must be one of: %v", field, analytics.Ranges(scopeOf(param)))
	}
	tmpl, ok := messages[tag]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
	msg := fmt.Sprintf(tmpl, field, param)
	if (tag == "min" || tag == "max") && fe.Kind().String() == "string" {
		msg += " characters"
	}
	return msg
}
