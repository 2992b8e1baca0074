package kv

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrUnknownEngine = errors.New("unknown storage engine")
)

type Entry struct {
	Key   []byte
	Value []byte
}

// Engine is the key value store a KVDB writes snapshots to.
type Engine interface {
	// Get returns a copy of the value stored at key or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)
	// WriteBatch stores all entries. It is not atomic: badger may commit a large
	// batch in several transactions, so a failed call can leave some entries written.
	WriteBatch(ctx context.Context, entries []Entry) error
	Delete(ctx context.Context, keys [][]byte) error
	Close() error
}

const (
	EngineBadger = "badger"
	EnginePebble = "pebble"
)

// OpenEngine opens the engine called kind in dir. An empty dir opens an in-memory store.
func OpenEngine(kind, dir string) (Engine, error) {
	switch kind {
	case EngineBadger:
		return NewBadgerEngine(dir)
	case EnginePebble:
		return NewPebbleEngine(dir)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}
