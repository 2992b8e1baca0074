package kv

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

type PebbleEngine struct {
	db *pebble.DB
}

func NewPebbleEngine(dir string) (*PebbleEngine, error) {
	opts := &pebble.Options{}
	if dir == "" {
		opts.FS = vfs.NewMem()
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, err
	}
	return &PebbleEngine{db: db}, nil
}

func (p *PebbleEngine) Get(key []byte) ([]byte, error) {
	val, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (p *PebbleEngine) WriteBatch(ctx context.Context, entries []Entry) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Set(e.Key, e.Value, nil); err != nil {
			return err
		}
	}

	return batch.Commit(pebble.Sync)
}

func (p *PebbleEngine) Delete(ctx context.Context, keys [][]byte) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Delete(key, nil); err != nil {
			return err
		}
	}

	return batch.Commit(pebble.Sync)
}

func (p *PebbleEngine) Close() error {
	return p.db.Close()
}
