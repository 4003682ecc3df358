package kv

import (
	"context"
)

// Store is a durable key-value store holding opaque byte values.
//
//go:generate mockgen -source=kv.go -destination=store_mock.go -package=kv
type Store interface {
	// Get returns the value stored under key. found is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}

// Nop is a Store that remembers nothing. It backs in-memory-only sessions.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Put(context.Context, string, []byte) error         { return nil }
