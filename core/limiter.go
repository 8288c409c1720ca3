package core

import (
	"context"
	"fmt"
	"sync"
)

// CallLimiter enforces a maximum number of remote calls, e.g. for scripted
// batch runs against a shared account.
type CallLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewCallLimiter creates a new limiter with a max number of calls.
// If max == 0, unlimited calls are allowed.
func NewCallLimiter(max int) *CallLimiter {
	return &CallLimiter{max: max}
}

// Increment reserves one call and returns ErrCallLimitExceeded once the
// limit is exceeded. Rejected calls are not counted.
func (cl *CallLimiter) Increment() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.max > 0 && cl.count >= cl.max {
		return fmt.Errorf("%w: %d", ErrCallLimitExceeded, cl.max)
	}
	cl.count++

	return nil
}

// Count returns the current number of calls made.
func (cl *CallLimiter) Count() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	return cl.count
}

// Remaining returns how many calls are left before hitting the limit.
func (cl *CallLimiter) Remaining() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.max == 0 {
		return -1 // unlimited
	}

	return cl.max - cl.count
}

// LimitInvoker wraps next so that every call first reserves budget from l.
func LimitInvoker(next Invoker, l *CallLimiter) Invoker {
	return InvokerFunc(func(ctx context.Context, req *Request) Envelope {
		if err := l.Increment(); err != nil {
			return Failure(fmt.Errorf("%s: %w", req.Operation, err))
		}
		return next.Invoke(ctx, req)
	})
}
