// Package core provides the foundational types shared by every command:
//
//   - Operation descriptors (fields, composites, outputs, default selector)
//   - Output selectors ("*", an output name, or "^Parameter")
//   - Request / Envelope values exchanged with an Invoker
//   - The per-call InvocationContext
//   - A CallLimiter capping the number of remote calls
//   - Typed errors for validation, selection, transport and service failures
//
// The package holds no transport or CLI concerns; those live in client and
// cmd/qconnect respectively.
package core
