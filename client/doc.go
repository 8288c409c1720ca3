// Package client provides core.Invoker implementations: HTTPClient, a
// REST-JSON transport for the QConnect service endpoint, and MockClient, a
// recording in-memory invoker for tests and examples.
//
// Request signing is not implemented here. Callers that need it plug a
// signer in through Options.RequestEditors.
package client
