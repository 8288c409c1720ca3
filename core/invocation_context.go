package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/hupe1980/qconnect/logging"
)

// InvocationContext carries the transient state of one command invocation:
//   - The ambient cancellation Context
//   - A fresh InvocationID used to correlate log lines
//   - The Operation descriptor being executed
//   - Bound Params (after defaults and idempotency tokens)
//   - The resolved output Selector
//
// It is created per call and discarded once the result has been projected.
// It is not safe for concurrent mutation.
type InvocationContext struct {
	*loggerAdapter

	Context      context.Context
	InvocationID string
	Operation    *Operation
	Params       map[string]any
	Selector     Selector
}

// NewInvocationContext constructs an InvocationContext with a random
// invocation id and an empty parameter set. Lines logged through it carry
// the operation name and invocation id.
func NewInvocationContext(ctx context.Context, op *Operation, logger logging.Logger) *InvocationContext {
	id := uuid.NewString()
	return &InvocationContext{
		loggerAdapter: newLoggerAdapter(logger, "operation", op.Name, "invocation_id", id),
		Context:       ctx,
		InvocationID:  id,
		Operation:     op,
		Params:        map[string]any{},
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (ic *InvocationContext) Done() <-chan struct{} { return ic.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (ic *InvocationContext) Err() error { return ic.Context.Err() }

// Param returns a bound parameter by exact name.
func (ic *InvocationContext) Param(name string) (any, bool) {
	v, ok := ic.Params[name]
	return v, ok
}

// Target returns a short description of what a mutating call acts upon: the
// pipeline parameter value when bound, else the operation name.
func (ic *InvocationContext) Target() string {
	if f, ok := ic.Operation.PipelineField(); ok {
		if v, ok := ic.Params[f.Name].(string); ok && v != "" {
			return v
		}
	}
	return ic.Operation.Name
}
