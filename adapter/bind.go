package adapter

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/hupe1980/qconnect/core"
	"github.com/hupe1980/qconnect/internal/util"
	"github.com/tidwall/sjson"
)

// Binding is the result of a successful Bind: the canonical parameter set
// (keyed by declared field name) and the request built from it.
type Binding struct {
	Params  map[string]any
	Request *core.Request
}

// Bind validates params against the descriptor and builds the request.
//
//   - unknown parameter names and mistyped values yield *util.ValidationError
//   - defaults are applied and idempotency tokens generated for absent fields
//   - an absent required field yields *core.MissingRequiredFieldError
//   - a composite is written to the body only when one of its fields is bound
func (a *Adapter) Bind(params map[string]any) (*Binding, error) {
	bound, explicit, err := a.bindParams(params)
	if err != nil {
		return nil, err
	}

	req, err := a.buildRequest(bound, explicit)
	if err != nil {
		return nil, err
	}

	return &Binding{Params: bound, Request: req}, nil
}

// bindParams returns the canonical parameter set and the names the caller
// supplied explicitly (as opposed to defaults and generated tokens).
func (a *Adapter) bindParams(params map[string]any) (map[string]any, map[string]bool, error) {
	bound := make(map[string]any, len(params))
	explicit := make(map[string]bool, len(params))

	for name, raw := range params {
		f, ok := a.op.Field(name)
		if !ok {
			return nil, nil, &util.ValidationError{Field: name, Value: raw, Message: fmt.Sprintf("unknown parameter for %s", a.op.Name)}
		}
		if raw == nil {
			continue
		}
		if explicit[f.Name] {
			return nil, nil, &util.ValidationError{Field: name, Value: raw, Message: "duplicate parameter (case-insensitive)"}
		}
		v, err := util.CoerceValue(f, raw)
		if err != nil {
			return nil, nil, err
		}
		bound[f.Name] = v
		explicit[f.Name] = true
	}

	for _, f := range a.op.AllFields() {
		if _, ok := bound[f.Name]; ok {
			continue
		}
		switch {
		case f.Default != nil:
			v, err := util.CoerceValue(f, f.Default)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: invalid default for %s: %w", a.op.Name, f.Name, err)
			}
			bound[f.Name] = v
		case f.Idempotency:
			bound[f.Name] = uuid.NewString()
		case f.Required:
			return nil, nil, &core.MissingRequiredFieldError{Operation: a.op.Name, Field: f.Name}
		}
	}

	return bound, explicit, nil
}

func (a *Adapter) buildRequest(bound map[string]any, explicit map[string]bool) (*core.Request, error) {
	req := &core.Request{
		Operation: a.op.Name,
		Method:    a.op.Method,
		Query:     url.Values{},
		Headers:   http.Header{},
	}

	pathValues := map[string]string{}
	body := []byte("{}")
	hasBody := false

	for _, f := range a.op.Fields {
		v, ok := bound[f.Name]
		if !ok {
			continue
		}
		switch f.Location {
		case core.InPath:
			pathValues[f.Key] = formatScalar(v)
		case core.InQuery:
			if list, isList := v.([]any); isList {
				for _, item := range list {
					req.Query.Add(f.Key, formatScalar(item))
				}
				continue
			}
			req.Query.Set(f.Key, formatScalar(v))
		case core.InHeader:
			req.Headers.Set(f.Key, formatScalar(v))
		default:
			var err error
			if body, err = sjson.SetBytes(body, f.Key, v); err != nil {
				return nil, fmt.Errorf("%s: set %s: %w", a.op.Name, f.Name, err)
			}
			hasBody = true
		}
	}

	for _, c := range a.op.Composites {
		fragment, ok, err := buildComposite(c, bound, explicit)
		if err != nil {
			return nil, fmt.Errorf("%s: composite %s: %w", a.op.Name, c.Name, err)
		}
		if !ok {
			continue
		}
		if body, err = sjson.SetRawBytes(body, c.Key, fragment); err != nil {
			return nil, fmt.Errorf("%s: set %s: %w", a.op.Name, c.Name, err)
		}
		hasBody = true
	}

	path, err := util.ExpandPath(a.op.Path, pathValues)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.op.Name, err)
	}
	req.Path = path

	if hasBody {
		req.Body = body
	}
	return req, nil
}

// buildComposite assembles the nested object for c. It reports false when
// none of the composite's fields was supplied by the caller; defaulted
// members alone never materialize a composite.
func buildComposite(c core.Composite, bound map[string]any, explicit map[string]bool) ([]byte, bool, error) {
	present := false
	for _, f := range c.Fields {
		if explicit[f.Name] {
			present = true
			break
		}
	}
	if !present {
		return nil, false, nil
	}

	fragment := []byte("{}")
	for _, f := range c.Fields {
		v, ok := bound[f.Name]
		if !ok {
			continue
		}
		var err error
		if fragment, err = sjson.SetBytes(fragment, f.Key, v); err != nil {
			return nil, false, err
		}
	}
	return fragment, true, nil
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
