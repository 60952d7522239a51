// Package validation checks create and update payloads for cameras before
// they reach storage.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/devsparksuporte-web/PotencialCameras/models"
	"github.com/go-playground/validator/v10"
)

// FieldViolation describes why one field was rejected.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level violation of a payload.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
)

type fieldSpec struct {
	name string
	kind fieldKind
}

// fields is the client-supplied part of a camera, in column order.
var fields = []fieldSpec{
	{"name", kindString},
	{"ip", kindString},
	{"serial", kindString},
	{"location", kindString},
	{"store", kindString},
	{"status", kindString},
	{"channels_total", kindInt},
	{"channels_working", kindInt},
	{"channels_blackscreen", kindInt},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCreate decodes a complete camera. Every field must be present.
func ValidateCreate(raw []byte) (models.CameraFormData, error) {
	var form models.CameraFormData

	values, violations, err := decodeFields(raw, true)
	if err != nil {
		return form, err
	}

	form.Name = stringValue(values, "name")
	form.IP = stringValue(values, "ip")
	form.Serial = stringValue(values, "serial")
	form.Location = stringValue(values, "location")
	form.Store = stringValue(values, "store")
	form.Status = models.Status(stringValue(values, "status"))
	form.ChannelsTotal = intValue(values, "channels_total")
	form.ChannelsWorking = intValue(values, "channels_working")
	form.ChannelsBlackscreen = intValue(values, "channels_blackscreen")

	violations = append(violations, ruleViolations(form, violations)...)
	if len(violations) > 0 {
		return models.CameraFormData{}, newValidationError(violations)
	}
	return form, nil
}

// ValidateUpdate decodes a partial camera. Absent fields stay nil; an empty
// object yields an empty patch and no error.
func ValidateUpdate(raw []byte) (models.CameraPatch, error) {
	var patch models.CameraPatch

	values, violations, err := decodeFields(raw, false)
	if err != nil {
		return patch, err
	}

	patch.Name = stringPtr(values, "name")
	patch.IP = stringPtr(values, "ip")
	patch.Serial = stringPtr(values, "serial")
	patch.Location = stringPtr(values, "location")
	patch.Store = stringPtr(values, "store")
	if s := stringPtr(values, "status"); s != nil {
		status := models.Status(*s)
		patch.Status = &status
	}
	patch.ChannelsTotal = intPtr(values, "channels_total")
	patch.ChannelsWorking = intPtr(values, "channels_working")
	patch.ChannelsBlackscreen = intPtr(values, "channels_blackscreen")

	violations = append(violations, ruleViolations(patch, violations)...)
	if len(violations) > 0 {
		return models.CameraPatch{}, newValidationError(violations)
	}
	return patch, nil
}

// ValidateForm checks an already typed camera, as built by scripts.
func ValidateForm(form models.CameraFormData) error {
	if violations := ruleViolations(form, nil); len(violations) > 0 {
		return newValidationError(violations)
	}
	return nil
}

// decodeFields type-checks every known field of a JSON object. Missing
// fields are violations only when required is set.
func decodeFields(raw []byte, required bool) (map[string]any, []FieldViolation, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil || object == nil {
		return nil, nil, newValidationError([]FieldViolation{{Field: "body", Message: "must be a JSON object"}})
	}

	values := make(map[string]any, len(fields))
	var violations []FieldViolation

	for _, field := range fields {
		value, ok := object[field.name]
		if !ok {
			if required {
				violations = append(violations, FieldViolation{Field: field.name, Message: "is required"})
			}
			continue
		}

		switch field.kind {
		case kindString:
			s, ok := decodeString(value)
			if !ok {
				violations = append(violations, FieldViolation{Field: field.name, Message: "must be a string"})
				continue
			}
			values[field.name] = s
		case kindInt:
			n, ok := decodeInt(value)
			if !ok {
				violations = append(violations, FieldViolation{Field: field.name, Message: "must be an integer"})
				continue
			}
			values[field.name] = n
		}
	}

	return values, violations, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeInt(raw json.RawMessage) (int, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if n, err := num.Int64(); err == nil {
		return int(n), true
	}
	// 4.0 and 1e2 are integers in JSON's number model.
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ruleViolations runs the struct rules and drops fields that already failed
// their type check.
func ruleViolations(s any, typed []FieldViolation) []FieldViolation {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldViolation{{Field: "body", Message: err.Error()}}
	}

	seen := make(map[string]bool, len(typed))
	for _, v := range typed {
		seen[v.Field] = true
	}

	var violations []FieldViolation
	for _, fe := range verrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		violations = append(violations, FieldViolation{Field: fe.Field(), Message: ruleMessage(fe)})
	}
	return violations
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

func newValidationError(violations []FieldViolation) *ValidationError {
	order := make(map[string]int, len(fields))
	for i, field := range fields {
		order[field.name] = i
	}
	sort.SliceStable(violations, func(i, j int) bool {
		oi, ok := order[violations[i].Field]
		if !ok {
			oi = -1
		}
		oj, ok := order[violations[j].Field]
		if !ok {
			oj = -1
		}
		return oi < oj
	})
	return &ValidationError{Violations: violations}
}

func stringValue(values map[string]any, name string) string {
	s, _ := values[name].(string)
	return s
}

func intValue(values map[string]any, name string) int {
	n, _ := values[name].(int)
	return n
}

func stringPtr(values map[string]any, name string) *string {
	s, ok := values[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func intPtr(values map[string]any, name string) *int {
	n, ok := values[name].(int)
	if !ok {
		return nil
	}
	return &n
}
