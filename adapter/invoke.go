package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/hupe1980/qconnect/core"
)

// Invoke performs exactly one remote call. Name-resolution failures are
// rewrapped as *core.TransportError keeping the original as cause; every
// other error is returned unchanged.
func (a *Adapter) Invoke(ctx context.Context, req *core.Request) core.Envelope {
	env := a.invoker.Invoke(ctx, req)
	if env.Err != nil {
		env.Body = nil
		env.Err = classifyTransportError(a.op.Name, env.Err)
		return env
	}
	if len(env.Body) == 0 {
		env.Body = json.RawMessage("{}")
	}
	return env
}

func classifyTransportError(op string, err error) error {
	var tErr *core.TransportError
	if errors.As(err, &tErr) {
		return err
	}
	var dnsErr *net.DNSError
	if !errors.As(err, &dnsErr) {
		return err
	}
	return &core.TransportError{
		Operation: op,
		Endpoint:  dnsErr.Name,
		Message:   fmt.Sprintf("unable to resolve service endpoint %q; check the configured region and endpoint URL", dnsErr.Name),
		Err:       err,
	}
}
