// Package kvstore provides the key-value persistence adapters the ledger
// writes whole collections into.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was removed.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a flat string-keyed blob store. Implementations need not be
// transactional; callers own the read-modify-write sequence.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
