package kv

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

type BadgerEngine struct {
	db *badger.DB
}

func NewBadgerEngine(dir string) (*BadgerEngine, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerEngine{db: db}, nil
}

func (b *BadgerEngine) Get(key []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (b *BadgerEngine) WriteBatch(ctx context.Context, entries []Entry) error {
	batch := b.db.NewWriteBatch()
	defer batch.Cancel()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Set(e.Key, e.Value); err != nil {
			return err
		}
	}

	return batch.Flush()
}

func (b *BadgerEngine) Delete(ctx context.Context, keys [][]byte) error {
	batch := b.db.NewWriteBatch()
	defer batch.Cancel()

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Delete(key); err != nil {
			return err
		}
	}

	return batch.Flush()
}

func (b *BadgerEngine) Close() error {
	return b.db.Close()
}
