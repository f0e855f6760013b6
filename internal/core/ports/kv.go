package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get when nothing is stored under a name.
var ErrKeyNotFound = errors.New("key not found")

// KVStore persists named JSON documents. Set overwrites any prior value and
// must be durable once it returns nil. There is no transaction across names.
type KVStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Set(ctx context.Context, name string, value []byte) error
}

// Pinger is implemented by backends that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}
