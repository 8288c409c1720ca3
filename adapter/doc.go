// Package adapter implements the generic command adapter: one engine that
// turns a set of named inputs into exactly one remote call, parameterized by
// a core.Operation descriptor.
//
// Every invocation runs the same linear sequence:
//
//	Bind -> Confirm (mutating operations only) -> Invoke -> Project
//
// Local validation (unknown or mistyped parameters, missing required
// parameters, invalid output selectors) fails before any request leaves the
// process. Declining confirmation yields a skipped Result and no error.
// Name-resolution failures are rewrapped as *core.TransportError; every other
// failure propagates unchanged. The adapter never retries.
package adapter
