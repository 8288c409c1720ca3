package core

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// FieldType enumerates the parameter shapes an operation can declare.
type FieldType string

const (
	// TypeString is a free-form string.
	TypeString FieldType = "string"
	// TypeInteger is a whole number, bound as int64.
	TypeInteger FieldType = "integer"
	// TypeBoolean is a true/false switch.
	TypeBoolean FieldType = "boolean"
	// TypeEnum is a string restricted to Field.Enum.
	TypeEnum FieldType = "enum"
	// TypeMap is a string to string map (tags, attributes).
	TypeMap FieldType = "map"
	// TypeRecord is an arbitrary JSON object.
	TypeRecord FieldType = "record"
	// TypeList is a list of strings or records.
	TypeList FieldType = "list"
)

// Location determines where a bound field travels in the outgoing request.
type Location string

const (
	// InPath substitutes the value into the path template.
	InPath Location = "path"
	// InQuery appends the value to the query string.
	InQuery Location = "query"
	// InBody sets the value at Field.Key inside the JSON body.
	InBody Location = "body"
	// InHeader sends the value as a request header named Field.Key.
	InHeader Location = "header"
)

// Field describes one named parameter of an operation.
type Field struct {
	// Name is the user facing parameter name (PascalCase).
	Name string

	// Key is the wire name. For body fields it is a dotted JSON path,
	// relative to the enclosing composite when the field belongs to one.
	Key string

	Type        FieldType
	Location    Location
	Required    bool
	Default     any      // applied when the caller leaves the field unset
	Enum        []string // accepted values of a TypeEnum field
	Pipeline    bool     // bound from positional / piped input
	Idempotency bool     // client token filled with a fresh UUID when unset
	Description string
}

// Composite groups body fields that are sent as one nested object. The
// object is only materialized when at least one of its fields is bound.
type Composite struct {
	Name   string
	Key    string
	Fields []Field
}

// Output maps a selector name onto a top-level key of the response body.
type Output struct {
	Name string
	Key  string
}

// Operation is the immutable descriptor of one remote API operation.
type Operation struct {
	Name        string
	Command     string
	Description string
	Method      string
	Path        string
	Fields      []Field
	Composites  []Composite
	Outputs     []Output

	// Mutating operations require confirmation unless forced.
	Mutating bool

	// DefaultSelect is "*" or the name of one of Outputs.
	DefaultSelect string

	// PassThroughField names the field echoed by the legacy pass-through mode.
	PassThroughField string
}

// WholeResponse selects the entire response object.
const WholeResponse = "*"

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// AllFields returns top-level fields followed by composite members, in
// declaration order.
func (o *Operation) AllFields() []Field {
	out := make([]Field, 0, len(o.Fields))
	out = append(out, o.Fields...)
	for _, c := range o.Composites {
		out = append(out, c.Fields...)
	}
	return out
}

// Field looks up a parameter by name (case-insensitive).
func (o *Operation) Field(name string) (Field, bool) {
	for _, f := range o.AllFields() {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// PipelineField returns the field bound from positional input, if any.
func (o *Operation) PipelineField() (Field, bool) {
	for _, f := range o.AllFields() {
		if f.Pipeline {
			return f, true
		}
	}
	return Field{}, false
}

// Output looks up a response output by selector name (case-insensitive).
func (o *Operation) Output(name string) (Output, bool) {
	for _, out := range o.Outputs {
		if strings.EqualFold(out.Name, name) {
			return out, true
		}
	}
	return Output{}, false
}

// Validate checks the descriptor for internal consistency.
func (o *Operation) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("operation name is required")
	}
	if o.Method == "" || o.Path == "" {
		return fmt.Errorf("operation %s: method and path are required", o.Name)
	}

	seen := map[string]bool{}
	pathKeys := map[string]bool{}
	pipelines := 0
	for _, f := range o.AllFields() {
		lower := strings.ToLower(f.Name)
		if f.Name == "" || f.Key == "" {
			return fmt.Errorf("operation %s: field with empty name or key", o.Name)
		}
		if seen[lower] {
			return fmt.Errorf("operation %s: duplicate field %s", o.Name, f.Name)
		}
		seen[lower] = true
		if f.Type == TypeEnum && len(f.Enum) == 0 {
			return fmt.Errorf("operation %s: enum field %s has no values", o.Name, f.Name)
		}
		if f.Location == InPath {
			if !f.Required {
				return fmt.Errorf("operation %s: path field %s must be required", o.Name, f.Name)
			}
			pathKeys[f.Key] = true
		}
		if f.Pipeline {
			pipelines++
		}
	}
	if pipelines > 1 {
		return fmt.Errorf("operation %s: more than one pipeline field", o.Name)
	}

	for _, c := range o.Composites {
		if c.Name == "" || c.Key == "" || len(c.Fields) == 0 {
			return fmt.Errorf("operation %s: composite %q is incomplete", o.Name, c.Name)
		}
		for _, f := range c.Fields {
			if f.Location != InBody {
				return fmt.Errorf("operation %s: composite field %s must be a body field", o.Name, f.Name)
			}
		}
	}

	for _, m := range placeholderRe.FindAllStringSubmatch(o.Path, -1) {
		if !pathKeys[m[1]] {
			return fmt.Errorf("operation %s: path placeholder {%s} has no path field", o.Name, m[1])
		}
		delete(pathKeys, m[1])
	}
	if len(pathKeys) > 0 {
		unused := slices.Sorted(maps.Keys(pathKeys))
		return fmt.Errorf("operation %s: path field %s not used in path template", o.Name, unused[0])
	}

	if o.DefaultSelect == "" {
		return fmt.Errorf("operation %s: default selector is required", o.Name)
	}
	if o.DefaultSelect != WholeResponse {
		if _, ok := o.Output(o.DefaultSelect); !ok {
			return fmt.Errorf("operation %s: default selector %s is not an output", o.Name, o.DefaultSelect)
		}
	}
	if o.PassThroughField != "" {
		if _, ok := o.Field(o.PassThroughField); !ok {
			return fmt.Errorf("operation %s: pass-through field %s is not declared", o.Name, o.PassThroughField)
		}
	}
	return nil
}
