// Package dmsapi wraps the AWS Database Migration Service control-plane
// client behind a single operation-dispatch entry point.
//
// Every call goes through CallAPI(ctx, operation, params): the snake_case
// operation name selects the typed SDK call, params is decoded into the
// SDK's input struct, and the output struct is flattened back into a map.
// Service and transport errors are returned unmodified; nothing in this
// package retries or swallows them.
package dmsapi

import "context"

// Invoker is the gateway contract the domain managers depend on. The real
// implementation is Client; tests substitute a recording mock.
type Invoker interface {
	// CallAPI performs the named DMS operation with the given parameters
	// (AWS PascalCase keys) and returns the raw response as a map.
	CallAPI(ctx context.Context, operation string, params map[string]any) (map[string]any, error)
}
