package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
)

var (
	ErrGraphNotFound   = errors.New("graph snapshot not found")
	ErrCorruptSnapshot = errors.New("corrupt graph snapshot")
)

// chunkSize keeps every stored value well below the engines' value size limits.
const chunkSize = 4 << 20

// KVDB stores graph snapshots as zstd compressed chunks under graph/<name>/<generation>/.
// Every save writes a new generation and switches the meta key to it last, so a
// save that fails halfway leaves the previous snapshot readable.
type KVDB struct {
	engine Engine
	logger *slog.Logger
}

func NewKVDB(engine Engine, logger *slog.Logger) *KVDB {
	if logger == nil {
		logger = slog.Default()
	}
	return &KVDB{engine: engine, logger: logger}
}

func metaKey(name string) []byte {
	return []byte("graph/" + name + "/meta")
}

func chunkKey(name string, generation uint64, i int) []byte {
	return []byte(fmt.Sprintf("graph/%s/%d/chunk/%06d", name, generation, i))
}

func chunkKeys(name string, meta snapshotMeta) [][]byte {
	keys := make([][]byte, 0, meta.Chunks)
	for i := 0; i < int(meta.Chunks); i++ {
		keys = append(keys, chunkKey(name, meta.Generation, i))
	}
	return keys
}

// currentMeta returns the meta of the stored snapshot, ok is false when there is
// none or it cannot be read.
func (k *KVDB) currentMeta(name string) (snapshotMeta, bool) {
	metaBB, err := k.engine.Get(metaKey(name))
	if err != nil {
		return snapshotMeta{}, false
	}
	meta, err := decode[snapshotMeta](metaBB)
	if err != nil || meta.Version != snapshotVersion || !meta.consistent() {
		return snapshotMeta{}, false
	}
	return meta, true
}

func (k *KVDB) SaveGraph(ctx context.Context, name string, g *datastructure.Graph) error {
	k.logger.Info("saving graph snapshot", "name", name, "nodes", g.NumNodes(), "edges", g.NumEdges())

	bb, err := encode(newGraphSnapshot(g))
	if err != nil {
		return fmt.Errorf("encode graph snapshot: %w", err)
	}
	bbCompressed, err := compress(bb)
	if err != nil {
		return fmt.Errorf("compress graph snapshot: %w", err)
	}

	prev, hasPrev := k.currentMeta(name)
	generation := prev.Generation + 1

	entries := make([]Entry, 0, len(bbCompressed)/chunkSize+1)
	for i, off := 0, 0; off < len(bbCompressed); i, off = i+1, off+chunkSize {
		end := min(off+chunkSize, len(bbCompressed))
		entries = append(entries, Entry{Key: chunkKey(name, generation, i), Value: bbCompressed[off:end]})
	}
	if err := k.engine.WriteBatch(ctx, entries); err != nil {
		return fmt.Errorf("write graph snapshot chunks: %w", err)
	}

	meta, err := encode(snapshotMeta{
		Version:    snapshotVersion,
		Chunks:     uint32(len(entries)),
		Nodes:      uint32(g.NumNodes()),
		Edges:      uint32(g.NumEdges()),
		Size:       uint64(len(bbCompressed)),
		Generation: generation,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot meta: %w", err)
	}
	if err := k.engine.WriteBatch(ctx, []Entry{{Key: metaKey(name), Value: meta}}); err != nil {
		return fmt.Errorf("write snapshot meta: %w", err)
	}

	if hasPrev {
		if err := k.engine.Delete(ctx, chunkKeys(name, prev)); err != nil {
			k.logger.Warn("could not delete old snapshot chunks", "name", name,
				"generation", prev.Generation, "error", err)
		}
	}
	k.logger.Info("graph snapshot saved", "name", name, "generation", generation,
		"chunks", len(entries), "bytes", len(bbCompressed))
	return nil
}

func (k *KVDB) LoadGraph(ctx context.Context, name string) (*datastructure.Graph, error) {
	metaBB, err := k.engine.Get(metaKey(name))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	meta, err := decode[snapshotMeta](metaBB)
	if err != nil {
		return nil, fmt.Errorf("%w: meta: %w", ErrCorruptSnapshot, err)
	}
	if meta.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorruptSnapshot, meta.Version)
	}
	if !meta.consistent() {
		return nil, fmt.Errorf("%w: meta size %d for %d chunks", ErrCorruptSnapshot, meta.Size, meta.Chunks)
	}

	// the meta is not trusted for the full allocation, chunks are checked as they arrive
	bbCompressed := make([]byte, 0, min(meta.Size, chunkSize))
	for i := 0; i < int(meta.Chunks); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunk, err := k.engine.Get(chunkKey(name, meta.Generation, i))
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %w", ErrCorruptSnapshot, i, err)
		}
		bbCompressed = append(bbCompressed, chunk...)
		if uint64(len(bbCompressed)) > meta.Size {
			return nil, fmt.Errorf("%w: chunk %d runs past size %d", ErrCorruptSnapshot, i, meta.Size)
		}
	}
	if uint64(len(bbCompressed)) != meta.Size {
		return nil, fmt.Errorf("%w: read %d of %d bytes", ErrCorruptSnapshot, len(bbCompressed), meta.Size)
	}

	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	snapshot, err := decode[graphSnapshot](bb)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	g, err := snapshot.toGraph()
	if err != nil {
		return nil, err
	}

	k.logger.Info("graph snapshot loaded", "name", name, "nodes", g.NumNodes(), "edges", g.NumEdges())
	return g, nil
}

func (k *KVDB) Close() error {
	return k.engine.Close()
}
