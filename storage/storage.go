package storage

import (
	"context"
	"errors"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Store is a key-value store of serialized games. Values are opaque JSON documents.
// Writes to one key are serialized within a process; nothing orders writes from
// different processes, so the last write wins.
type Store interface {
	Get(ctx context.Context, id string) ([]byte, error)
	// Create stores value under a new id and fails with ErrGameExists otherwise.
	Create(ctx context.Context, id string, value []byte) error
	Put(ctx context.Context, id string, value []byte) error
	List(ctx context.Context) ([]string, error)
	Close() error
}
