// Package kv defines the durable key-value slot the store persists into.
//
// The contract is deliberately tiny: whole-snapshot reads and last-write-wins
// whole-snapshot writes on a handful of named slots. There is exactly one
// logical writer, so no cross-process conflict detection is provided.
package kv

import "context"

// Store is the durable storage primitive the expense store writes through.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// slot has never been written.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set overwrites the slot for key.
	Set(ctx context.Context, key string, value string) error

	Close() error
}
