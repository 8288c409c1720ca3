package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hupe1980/qconnect/core"
)

// Prompt describes the action awaiting confirmation.
type Prompt struct {
	Operation string
	Target    string
}

// String renders the prompt the way it is shown to interactive users.
func (p Prompt) String() string {
	return fmt.Sprintf("Performing the operation %q on target %q.", p.Operation, p.Target)
}

// Confirmer decides whether a mutating operation may proceed.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, p Prompt) (bool, error)

// Confirm calls f(ctx, p).
func (f ConfirmerFunc) Confirm(ctx context.Context, p Prompt) (bool, error) { return f(ctx, p) }

var (
	// AutoConfirm approves every prompt.
	AutoConfirm Confirmer = ConfirmerFunc(func(context.Context, Prompt) (bool, error) { return true, nil })

	// DenyAll declines every prompt.
	DenyAll Confirmer = ConfirmerFunc(func(context.Context, Prompt) (bool, error) { return false, nil })
)

// PromptConfirmer asks an interactive user. It writes the prompt to Out and
// accepts "y" or "yes" (any case) read from In; anything else, including EOF,
// declines.
//
// Cancelling ctx abandons the wait but not the read: the next line typed is
// delivered to the following Confirm call instead of being lost.
type PromptConfirmer struct {
	mu      sync.Mutex
	in      *bufio.Reader
	out     io.Writer
	pending chan answer
}

type answer struct {
	line string
	err  error
}

// NewPromptConfirmer creates a PromptConfirmer reading answers from in and
// writing prompts to out.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm shows p and waits for one line of input.
func (c *PromptConfirmer) Confirm(ctx context.Context, p Prompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "\nConfirm\nAre you sure you want to perform this action?\n%s\n[Y] Yes  [N] No (default is \"N\"): ", p)

	if c.pending == nil {
		ch := make(chan answer, 1)
		c.pending = ch
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- answer{line: line, err: err}
		}()
	}

	var ans answer
	select {
	case ans = <-c.pending:
		c.pending = nil
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return false, ctx.Err()
	}

	if ans.err != nil && ans.err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", ans.err)
	}
	switch strings.ToLower(strings.TrimSpace(ans.line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Confirm applies the confirmation policy to one invocation: non-mutating
// operations always proceed, WhatIf always declines after reporting the
// action, Force proceeds without asking, and otherwise the Confirmer decides.
func (a *Adapter) Confirm(ic *core.InvocationContext, in Input) (bool, error) {
	if !a.op.Mutating {
		return true, nil
	}

	p := Prompt{Operation: a.op.Name, Target: ic.Target()}

	if in.WhatIf {
		ic.LogInfo("command.whatif", "target", p.Target)
		return false, nil
	}
	if in.Force {
		return true, nil
	}

	ok, err := a.opts.Confirmer.Confirm(ic.Context, p)
	if err != nil {
		return false, err
	}
	if !ok {
		ic.LogInfo("command.confirm.declined", "target", p.Target)
	}
	return ok, nil
}
