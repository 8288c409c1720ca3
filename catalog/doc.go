// Package catalog holds the declarative descriptors of every QConnect
// operation exposed as a command, plus a Registry to look them up by
// operation name or command verb.
package catalog
