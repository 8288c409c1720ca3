// Package qconnect provides a high-level façade over the operation catalog,
// the adapter engine and the REST-JSON transport. Most applications interact
// with this package by:
//  1. Creating a Client via New() (optionally overriding region, endpoint,
//     invoker, confirmer or logger)
//  2. Invoking operations by name with Invoke
//
// The façade delegates the Bind -> Confirm -> Invoke -> Project sequence to
// adapter.Adapter. Defaults are safe for local development: mutating
// operations are declined unless a Confirmer is supplied or Input.Force is set.
package qconnect

import (
	"context"
	"fmt"

	"github.com/hupe1980/qconnect/adapter"
	"github.com/hupe1980/qconnect/catalog"
	"github.com/hupe1980/qconnect/client"
	"github.com/hupe1980/qconnect/core"
	"github.com/hupe1980/qconnect/logging"
	"golang.org/x/sync/errgroup"
)

// Options configures the Client instance.
type Options struct {
	// Registry resolves operation names (defaults to catalog.Default()).
	Registry *catalog.Registry

	// Invoker performs remote calls. When nil an HTTP client is built from
	// Region, Endpoint and Headers.
	Invoker core.Invoker

	Region   string
	Endpoint string
	Headers  map[string]string

	// Confirmer is asked before mutating operations (defaults to DenyAll).
	Confirmer adapter.Confirmer

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// MaxCalls caps the number of remote calls made through this Client.
	// Zero means unlimited; once spent, calls fail with
	// core.ErrCallLimitExceeded before reaching the transport.
	MaxCalls int
}

// Client is the high-level façade aggregating the catalog and transport.
type Client struct {
	opts Options
}

// New creates a new Client with optional overrides.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Region:    client.DefaultRegion,
		Confirmer: adapter.DenyAll,
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Invoker == nil {
		opts.Invoker = client.NewHTTPClient(func(o *client.Options) {
			o.Region = opts.Region
			o.Endpoint = opts.Endpoint
			o.Headers = opts.Headers
			o.Logger = opts.Logger
		})
	}

	if opts.MaxCalls > 0 {
		opts.Invoker = core.LimitInvoker(opts.Invoker, core.NewCallLimiter(opts.MaxCalls))
	}

	return &Client{opts: opts}
}

// Adapter returns an adapter for the named operation (operation name or
// command name, case-insensitive).
func (c *Client) Adapter(operation string) (*adapter.Adapter, error) {
	op, err := c.opts.Registry.Get(operation)
	if err != nil {
		return nil, err
	}
	return adapter.New(op, c.opts.Invoker, func(o *adapter.Options) {
		o.Logger = c.opts.Logger
		o.Confirmer = c.opts.Confirmer
	}), nil
}

// Invoke runs one operation end to end.
func (c *Client) Invoke(ctx context.Context, operation string, in adapter.Input) (adapter.Result, error) {
	a, err := c.Adapter(operation)
	if err != nil {
		return adapter.Result{}, err
	}
	return a.Run(ctx, in)
}

// InvokeMany runs one operation once per input and returns the results in
// input order. Non-mutating operations run concurrently with at most
// concurrency calls in flight (0 means unbounded); mutating operations run
// sequentially so confirmation prompts never interleave. The first error
// cancels the remaining calls.
func (c *Client) InvokeMany(ctx context.Context, operation string, inputs []adapter.Input, concurrency int) ([]adapter.Result, error) {
	a, err := c.Adapter(operation)
	if err != nil {
		return nil, err
	}

	results := make([]adapter.Result, len(inputs))

	if a.Operation().Mutating {
		for i, in := range inputs {
			res, err := a.Run(ctx, in)
			if err != nil {
				return nil, fmt.Errorf("%s input %d: %w", operation, i, err)
			}
			results[i] = res
		}
		return results, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, in := range inputs {
		g.Go(func() error {
			res, err := a.Run(gCtx, in)
			if err != nil {
				return fmt.Errorf("%s input %d: %w", operation, i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Operations lists the registered descriptors sorted by name.
func (c *Client) Operations() []*core.Operation { return c.opts.Registry.List() }
