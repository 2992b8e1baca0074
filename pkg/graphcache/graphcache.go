// Package graphcache loads the road graph once and shares it between requests.
package graphcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/graphdata"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/kv"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/osmparser"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/snap"

	"golang.org/x/sync/singleflight"
)

var ErrNoSource = errors.New("no graph source configured")

// Loader produces a fresh graph.
type Loader func(ctx context.Context) (*datastructure.Graph, error)

// Snapshot is an immutable loaded graph together with its nearest node index.
type Snapshot struct {
	Graph    *datastructure.Graph
	Snapper  *snap.NodeSnapper
	LoadedAt time.Time
}

// Cache holds at most one Snapshot. Concurrent misses share a single load.
type Cache struct {
	load   Loader
	logger *slog.Logger

	group      singleflight.Group
	mu         sync.RWMutex
	current    *Snapshot
	generation uint64
}

func New(load Loader, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{load: load, logger: logger}
}

// Get returns the cached snapshot, loading it on first use.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	current, gen := c.current, c.generation
	c.mu.RUnlock()
	if current != nil {
		return current, nil
	}

	resultI, err, _ := c.group.Do(fmt.Sprintf("graph-%d", gen), func() (any, error) {
		c.mu.RLock()
		cached := c.current
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		s, err := c.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation == gen {
			c.current = s
		}
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	s, ok := resultI.(*Snapshot)
	if !ok {
		return nil, fmt.Errorf("unexpected type from graph load: got %T", resultI)
	}
	return s, nil
}

// Reload loads the graph again and swaps it in only when the load succeeds. On error
// the previous snapshot keeps serving. Concurrent reloads share one load.
func (c *Cache) Reload(ctx context.Context) (*Snapshot, error) {
	resultI, err, _ := c.group.Do("reload", func() (any, error) {
		s, err := c.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.current = s
		// loads started before the swap must not overwrite it
		c.generation++
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reload graph: %w", err)
	}

	s, ok := resultI.(*Snapshot)
	if !ok {
		return nil, fmt.Errorf("unexpected type from graph reload: got %T", resultI)
	}
	return s, nil
}

func (c *Cache) loadSnapshot(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	g, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("graph loaded", "nodes", g.NumNodes(), "edges", g.NumEdges(),
		"took", time.Since(start).String())
	return &Snapshot{Graph: g, Snapper: snap.NewNodeSnapper(g), LoadedAt: time.Now()}, nil
}

// FileLoader reads graph.json, or an OpenStreetMap extract when path ends in .pbf or .osm.
func FileLoader(path string, logger *slog.Logger) Loader {
	return func(ctx context.Context) (*datastructure.Graph, error) {
		if path == "" {
			return nil, ErrNoSource
		}
		if strings.HasSuffix(path, ".pbf") || strings.HasSuffix(path, ".osm") {
			doc, err := osmparser.NewOSMParser(logger, nil).ParseFile(ctx, path)
			if err != nil {
				return nil, err
			}
			return doc.Build()
		}
		return graphdata.LoadFile(path)
	}
}

// StoreLoader reads the snapshot called name from db. When there is none yet and
// fallback is non nil, the graph is built with fallback and saved for the next start.
func StoreLoader(db *kv.KVDB, name string, fallback Loader) Loader {
	return func(ctx context.Context) (*datastructure.Graph, error) {
		g, err := db.LoadGraph(ctx, name)
		if err == nil || !errors.Is(err, kv.ErrGraphNotFound) || fallback == nil {
			return g, err
		}

		g, err = fallback(ctx)
		if err != nil {
			return nil, err
		}
		if err := db.SaveGraph(ctx, name, g); err != nil {
			return nil, err
		}
		return g, nil
	}
}
