// Package schema builds and validates the JSON schemas attached to tool
// parameters. Validation is deliberately small: required fields, primitive
// types, numeric bounds and string enums — enough to reject a bad tool call
// before it runs, not a full JSON Schema implementation.
package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ValidationError reports a parameter that failed validation.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// FromStruct derives a JSON schema from a Go struct using reflection.
// Field metadata is read from tags:
//
//	json:"name,omitempty"  — property name; omitempty makes the field optional
//	description:"..."      — property description surfaced to the planner
//	minimum:"1"            — inclusive lower bound for numeric fields
//	maximum:"480"          — inclusive upper bound for numeric fields
//	enum:"play,pause"      — allowed values for string fields
//
// Pointer fields are optional; everything else exported and not omitempty is
// required.
func FromStruct(structType any) map[string]any {
	t := reflect.TypeOf(structType)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	properties := make(map[string]any)
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
		}

		fieldSchema := map[string]any{
			"type": jsonType(field.Type),
		}

		if description := field.Tag.Get("description"); description != "" {
			fieldSchema["description"] = description
		}
		if min := field.Tag.Get("minimum"); min != "" {
			if f, err := strconv.ParseFloat(min, 64); err == nil {
				fieldSchema["minimum"] = f
			}
		}
		if max := field.Tag.Get("maximum"); max != "" {
			if f, err := strconv.ParseFloat(max, 64); err == nil {
				fieldSchema["maximum"] = f
			}
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			values := strings.Split(enum, ",")
			opts := make([]any, 0, len(values))
			for _, v := range values {
				opts = append(opts, strings.TrimSpace(v))
			}
			fieldSchema["enum"] = opts
		}

		properties[fieldName] = fieldSchema

		if !hasOmitEmpty(jsonTag) && field.Type.Kind() != reflect.Ptr {
			required = append(required, fieldName)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Validate checks params against a schema produced by FromStruct or written
// by hand. It returns a *ValidationError describing the first violation.
func Validate(params map[string]any, schema map[string]any) error {
	for _, fieldName := range requiredFields(schema) {
		if _, exists := params[fieldName]; !exists {
			return &ValidationError{
				Field:   fieldName,
				Message: "required field is missing",
			}
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for fieldName, value := range params {
		propSchema, exists := properties[fieldName]
		if !exists {
			continue // extra fields pass through to the tool
		}

		propMap, ok := propSchema.(map[string]any)
		if !ok {
			continue
		}

		expectedType, _ := propMap["type"].(string)
		if !isValidType(value, expectedType) {
			return &ValidationError{
				Field:   fieldName,
				Value:   value,
				Message: fmt.Sprintf("expected type %s, got %T", expectedType, value),
			}
		}

		if err := checkBounds(fieldName, value, propMap); err != nil {
			return err
		}
		if err := checkEnum(fieldName, value, propMap); err != nil {
			return err
		}
	}

	return nil
}

// requiredFields tolerates both []string (hand-written schemas) and []any
// (schemas that round-tripped through JSON).
func requiredFields(schema map[string]any) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []any:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func checkBounds(field string, value any, propMap map[string]any) error {
	num, ok := asFloat(value)
	if !ok {
		return nil
	}
	if min, ok := asFloat(propMap["minimum"]); ok && num < min {
		return &ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("value %v is below the minimum of %v", value, min),
		}
	}
	if max, ok := asFloat(propMap["maximum"]); ok && num > max {
		return &ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("value %v is above the maximum of %v", value, max),
		}
	}
	return nil
}

func checkEnum(field string, value any, propMap map[string]any) error {
	var allowed []any
	switch e := propMap["enum"].(type) {
	case []any:
		allowed = e
	case []string:
		allowed = make([]any, 0, len(e))
		for _, s := range e {
			allowed = append(allowed, s)
		}
	default:
		return nil
	}

	for _, opt := range allowed {
		if fmt.Sprintf("%v", opt) == fmt.Sprintf("%v", value) {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("value %v is not one of the allowed options %v", value, allowed),
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// jsonType returns the JSON schema type for a given Go type.
func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return jsonType(t.Elem())
	default:
		return "string"
	}
}

// hasOmitEmpty checks if a JSON tag has the "omitempty" option.
func hasOmitEmpty(tag string) bool {
	parts := strings.Split(tag, ",")
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "omitempty" {
			return true
		}
	}
	return false
}

// isValidType checks if a value matches the expected JSON schema type.
func isValidType(value any, expectedType string) bool {
	if value == nil {
		return true // nil is valid for any type
	}

	switch expectedType {
	case "string":
		_, ok := value.(string)
		return ok
	case "integer":
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64: // JSON unmarshaling produces float64 for numbers
			return v == float64(int64(v))
		}
		return false
	case "number":
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
			float32, float64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true // unknown types are assumed valid
	}
}
