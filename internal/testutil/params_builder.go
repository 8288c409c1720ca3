package testutil

// ParamsBuilder helps construct adapter parameter sets with fluent chaining.
// Example:
//
//	params := NewParamsBuilder().Set("AssistantId", "a-1").Set("MaxResult", 5).Build()
type ParamsBuilder struct {
	params map[string]any
}

// NewParamsBuilder creates an empty builder.
func NewParamsBuilder() *ParamsBuilder {
	return &ParamsBuilder{params: map[string]any{}}
}

// Set sets or overwrites one parameter (chainable).
func (b *ParamsBuilder) Set(name string, val any) *ParamsBuilder {
	b.params[name] = val
	return b
}

// Tags sets the Tag map parameter from alternating key/value pairs (chainable).
// A trailing key without a value is ignored.
func (b *ParamsBuilder) Tags(kv ...string) *ParamsBuilder {
	tags := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		tags[kv[i]] = kv[i+1]
	}
	b.params["Tag"] = tags
	return b
}

// Build returns a copy of the accumulated parameters.
func (b *ParamsBuilder) Build() map[string]any {
	out := make(map[string]any, len(b.params))
	for k, v := range b.params {
		out[k] = v
	}
	return out
}
