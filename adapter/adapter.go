package adapter

import (
	"context"
	"time"

	"github.com/hupe1980/qconnect/core"
	"github.com/hupe1980/qconnect/logging"
)

// Options configure an Adapter.
type Options struct {
	// Logger receives command.* lifecycle events. Defaults to NoOpLogger.
	Logger logging.Logger

	// Confirmer is asked before mutating operations run. Defaults to DenyAll,
	// so library callers must either supply one or set Input.Force.
	Confirmer Confirmer
}

// Input is the caller supplied part of one invocation.
type Input struct {
	// Params maps parameter names (case-insensitive) to values. Nil values
	// count as absent.
	Params map[string]any

	// Select is the output selector: "*", an output name or "^Parameter".
	// Empty uses the operation default.
	Select string

	// PassThru is the legacy switch echoing the operation's identifying
	// parameter instead of the response.
	PassThru bool

	// Force skips confirmation of mutating operations.
	Force bool

	// WhatIf reports what a mutating operation would do without calling it.
	WhatIf bool
}

// Result is the projected outcome of one invocation.
type Result struct {
	InvocationID string
	Value        any
	StatusCode   int
	RequestID    string

	// Skipped is set when confirmation declined the call. Target names what
	// would have been acted on.
	Skipped bool
	Target  string
}

// Adapter binds, confirms, invokes and projects one operation.
//
// An Adapter has no mutable state after construction and is safe for
// concurrent use by multiple goroutines.
type Adapter struct {
	op      *core.Operation
	invoker core.Invoker
	opts    Options
}

// New creates an Adapter for op using invoker as the transport.
func New(op *core.Operation, invoker core.Invoker, optFns ...func(o *Options)) *Adapter {
	opts := Options{
		Logger:    logging.NoOpLogger{},
		Confirmer: DenyAll,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Confirmer == nil {
		opts.Confirmer = DenyAll
	}
	return &Adapter{op: op, invoker: invoker, opts: opts}
}

// Operation returns the descriptor the adapter executes.
func (a *Adapter) Operation() *core.Operation { return a.op }

// Run executes the full Bind -> Confirm -> Invoke -> Project sequence.
//
// Logging Fields:
//
//	operation: remote operation name
//	invocation_id: per-call correlation id
//	duration_ms: remote call latency in milliseconds
func (a *Adapter) Run(ctx context.Context, in Input) (Result, error) {
	ic := core.NewInvocationContext(ctx, a.op, a.opts.Logger)
	res := Result{InvocationID: ic.InvocationID}

	sel, err := core.ResolveSelector(a.op, in.Select, in.PassThru)
	if err != nil {
		ic.LogWarn("command.select.invalid", "error", err.Error())
		return res, err
	}
	ic.Selector = sel

	binding, err := a.Bind(in.Params)
	if err != nil {
		ic.LogWarn("command.bind.failed", "error", err.Error())
		return res, err
	}
	ic.Params = binding.Params

	ok, err := a.Confirm(ic, in)
	if err != nil {
		return res, err
	}
	if !ok {
		res.Skipped = true
		res.Target = ic.Target()
		return res, nil
	}

	if err := ic.Err(); err != nil {
		return res, err
	}

	ic.LogDebug("command.invoke.start", "method", binding.Request.Method, "path", binding.Request.Path)
	start := time.Now()

	env := a.Invoke(ctx, binding.Request)
	res.StatusCode = env.StatusCode
	res.RequestID = env.RequestID
	if !env.OK() {
		ic.LogError("command.invoke.error", "error", env.Err.Error())
		return res, env.Err
	}

	ic.LogInfo("command.invoke.success", "duration_ms", time.Since(start).Milliseconds())

	val, err := a.Project(env, sel, ic.Params)
	if err != nil {
		return res, err
	}
	res.Value = val
	return res, nil
}
