// Package testutil contains helpers used across tests to reduce boilerplate
// when building parameter sets and standing up a fake service endpoint. The
// fake service routes every catalog operation with chi, records the requests
// it receives and answers with canned responses. These helpers are not
// intended for production usage.
package testutil
