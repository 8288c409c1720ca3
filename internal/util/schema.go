package util

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hupe1980/qconnect/core"
)

// ValidationError represents parameter validation errors with detailed information.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// CoerceValue converts value to the canonical Go representation of the
// field's type:
//
//	string  -> string
//	integer -> int64
//	boolean -> bool
//	enum    -> string (canonical casing from Field.Enum)
//	map     -> map[string]string
//	record  -> map[string]any
//	list    -> []any
//
// Strings are accepted for integer, boolean and record fields and parsed.
func CoerceValue(f core.Field, value any) (any, error) {
	switch f.Type {
	case core.TypeString, "":
		if s, ok := value.(string); ok {
			return s, nil
		}
	case core.TypeInteger:
		if n, ok := toInt64(value); ok {
			return n, nil
		}
	case core.TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b, nil
			}
		}
	case core.TypeEnum:
		s, ok := value.(string)
		if !ok {
			break
		}
		for _, e := range f.Enum {
			if strings.EqualFold(e, s) {
				return e, nil
			}
		}
		return nil, &ValidationError{Field: f.Name, Value: value, Message: fmt.Sprintf("must be one of %s", strings.Join(f.Enum, ", "))}
	case core.TypeMap:
		if m, ok := toStringMap(value); ok {
			return m, nil
		}
	case core.TypeRecord:
		if r, ok := toRecord(value); ok {
			return r, nil
		}
	case core.TypeList:
		if l, ok := toList(value); ok {
			return l, nil
		}
	default:
		return value, nil // Unknown types pass through
	}
	return nil, &ValidationError{Field: f.Name, Value: value, Message: fmt.Sprintf("expected type %s, got %T", f.Type, value)}
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64: // JSON unmarshaling often produces float64 for numbers
		if v == math.Trunc(v) {
			return int64(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func toStringMap(value any) (map[string]string, bool) {
	switch v := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func toRecord(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	case string:
		var out map[string]any
		if err := json.Unmarshal([]byte(v), &out); err != nil || out == nil {
			return nil, false
		}
		return out, true
	case json.RawMessage:
		return toRecord(string(v))
	}
	return nil, false
}

func toList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, r := range v {
			out[i] = r
		}
		return out, true
	}
	return nil, false
}

// OperationSchema renders the parameters of an operation as a minimal JSON
// schema document. Composite members are nested under their composite name.
func OperationSchema(op *core.Operation) map[string]any {
	properties := make(map[string]any)
	required := make([]string, 0)

	for _, f := range op.Fields {
		properties[f.Name] = fieldSchema(f)
		if f.Required && f.Default == nil && !f.Idempotency {
			required = append(required, f.Name)
		}
	}

	for _, c := range op.Composites {
		props := make(map[string]any)
		var req []string
		for _, f := range c.Fields {
			props[f.Name] = fieldSchema(f)
			if f.Required && f.Default == nil {
				req = append(req, f.Name)
			}
		}
		cs := map[string]any{"type": "object", "properties": props}
		if len(req) > 0 {
			sort.Strings(req)
			cs["required"] = req
		}
		properties[c.Name] = cs
	}

	schema := map[string]any{
		"type":        "object",
		"title":       op.Name,
		"description": op.Description,
		"properties":  properties,
	}

	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}

	return schema
}

func fieldSchema(f core.Field) map[string]any {
	s := map[string]any{"type": getJSONType(f.Type)}
	if f.Description != "" {
		s["description"] = f.Description
	}
	if len(f.Enum) > 0 {
		s["enum"] = f.Enum
	}
	if f.Default != nil {
		s["default"] = f.Default
	}
	return s
}

// getJSONType returns the JSON schema type for a field type.
func getJSONType(t core.FieldType) string {
	switch t {
	case core.TypeInteger:
		return "integer"
	case core.TypeBoolean:
		return "boolean"
	case core.TypeList:
		return "array"
	case core.TypeMap, core.TypeRecord:
		return "object"
	default:
		return "string"
	}
}
