package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Request is a fully bound outgoing call: path placeholders expanded, query
// and headers populated, body assembled.
type Request struct {
	Operation string
	Method    string
	Path      string
	Query     url.Values
	Headers   http.Header
	Body      []byte // nil when no body field is bound
}

// Envelope carries the outcome of one invocation: exactly one of Body or Err
// is set.
type Envelope struct {
	Body       json.RawMessage
	Err        error
	StatusCode int
	RequestID  string
}

// OK reports whether the envelope holds a successful response.
func (e Envelope) OK() bool { return e.Err == nil }

// Success builds an envelope around a decoded response body.
func Success(body json.RawMessage) Envelope { return Envelope{Body: body} }

// Failure builds an envelope around an error.
func Failure(err error) Envelope { return Envelope{Err: err} }

// Invoker performs one remote call. Implementations must honor ctx
// cancellation and must not retry on behalf of the caller unless configured
// to do so at the transport level.
type Invoker interface {
	Invoke(ctx context.Context, req *Request) Envelope
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, req *Request) Envelope

// Invoke calls f(ctx, req).
func (f InvokerFunc) Invoke(ctx context.Context, req *Request) Envelope { return f(ctx, req) }
