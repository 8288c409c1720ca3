package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/qconnect/core"
	"github.com/tidwall/gjson"
)

// Project applies sel to a successful envelope. Objects decode as
// map[string]any and arrays as []any. Integral numbers decode as int64,
// integers beyond int64 as json.Number and everything else as float64. A
// named output missing from the response projects to nil. Parameter
// selectors return the bound value unchanged.
func (a *Adapter) Project(env core.Envelope, sel core.Selector, params map[string]any) (any, error) {
	if !env.OK() {
		return nil, env.Err
	}

	switch sel.Kind {
	case core.SelectParameter:
		return params[sel.Field.Name], nil
	case core.SelectWhole:
		if !gjson.ValidBytes(env.Body) {
			return nil, fmt.Errorf("%s: response is not valid JSON", a.op.Name)
		}
		return decodeJSON(env.Body)
	case core.SelectOutput:
		if !gjson.ValidBytes(env.Body) {
			return nil, fmt.Errorf("%s: response is not valid JSON", a.op.Name)
		}
		r := gjson.GetBytes(env.Body, gjsonKey(sel.Output.Key))
		if !r.Exists() {
			return nil, nil
		}
		return decodeJSON([]byte(r.Raw))
	default:
		return nil, &core.InvalidSelectorError{Operation: a.op.Name, Selector: sel.Expr, Reason: "unsupported selector kind"}
	}
}

// gjsonKey escapes path metacharacters so a response key is matched literally.
func gjsonKey(k string) string {
	out := make([]byte, 0, len(k))
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '.', '*', '?', '|', '#', '@', '\\':
			out = append(out, '\\')
		}
		out = append(out, k[i])
	}
	return string(out)
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if !strings.ContainsAny(x.String(), ".eE") {
			return x // integer beyond int64, keep every digit
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x
	default:
		return v
	}
}
