package core

import "strings"

// SelectorKind distinguishes the three projection modes.
type SelectorKind int

const (
	// SelectWhole returns the entire response.
	SelectWhole SelectorKind = iota
	// SelectOutput returns one named field of the response.
	SelectOutput
	// SelectParameter echoes a bound input parameter ("^Name").
	SelectParameter
)

// Selector is a parsed output selector bound to one operation.
type Selector struct {
	Kind   SelectorKind
	Expr   string
	Output Output // set for SelectOutput
	Field  Field  // set for SelectParameter
}

// ResolveSelector turns the user supplied selector expression and legacy
// pass-through switch into a Selector. An empty expression falls back to the
// operation's default selector.
func ResolveSelector(op *Operation, expr string, passThru bool) (Selector, error) {
	if passThru {
		if expr != "" {
			return Selector{}, &InvalidSelectorError{Operation: op.Name, Selector: expr, Reason: "pass-through cannot be combined with an explicit selector"}
		}
		if op.PassThroughField == "" {
			return Selector{}, &InvalidSelectorError{Operation: op.Name, Selector: "^", Reason: "operation has no pass-through parameter"}
		}
		expr = "^" + op.PassThroughField
	}
	if expr == "" {
		expr = op.DefaultSelect
	}
	return ParseSelector(op, expr)
}

// ParseSelector parses "*", "^ParameterName" or an output name.
func ParseSelector(op *Operation, expr string) (Selector, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return Selector{}, &InvalidSelectorError{Operation: op.Name, Selector: expr, Reason: "empty selector"}
	case expr == WholeResponse:
		return Selector{Kind: SelectWhole, Expr: expr}, nil
	case strings.HasPrefix(expr, "^"):
		name := strings.TrimPrefix(expr, "^")
		f, ok := op.Field(name)
		if !ok {
			return Selector{}, &InvalidSelectorError{Operation: op.Name, Selector: expr, Reason: "no such parameter"}
		}
		return Selector{Kind: SelectParameter, Expr: expr, Field: f}, nil
	default:
		out, ok := op.Output(expr)
		if !ok {
			return Selector{}, &InvalidSelectorError{Operation: op.Name, Selector: expr, Reason: "no such response field"}
		}
		return Selector{Kind: SelectOutput, Expr: expr, Output: out}, nil
	}
}
