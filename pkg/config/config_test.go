package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Graph.UsesStore())

	s := cfg.Sampling.ForGraph(10000)
	assert.Equal(t, 5, s.RecordEvery)
	assert.Equal(t, 50, s.FrontierSampleSize)
	assert.Equal(t, 20000, s.MaxPathPoints)
	assert.Equal(t, 1500, s.MaxSteps)
	assert.Equal(t, 40000, s.MaxStepNodeIDs)
	assert.Equal(t, 20000, s.MaxVisitedOrder)

	assert.Equal(t, 1, cfg.Sampling.ForGraph(10).RecordEvery)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen_addr: ":8080"
  rate_limit: 5
graph:
  source: ./baku.osm.pbf
  store_engine: pebble
sampling:
  record_every: 3
  max_steps: 10
log:
  level: debug
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 5.0, cfg.Server.RateLimit)
	assert.Equal(t, 20, cfg.Server.RateBurst)
	assert.Equal(t, "./baku.osm.pbf", cfg.Graph.Source)
	assert.True(t, cfg.Graph.UsesStore())
	assert.Equal(t, "default", cfg.Graph.Snapshot)

	s := cfg.Sampling.ForGraph(1_000_000)
	assert.Equal(t, 3, s.RecordEvery)
	assert.Equal(t, 10, s.MaxSteps)
	assert.Equal(t, 50, s.FrontierSampleSize)

	var buf bytes.Buffer
	cfg.Log.NewLogger(&buf).Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestDecodeRejects(t *testing.T) {
	cases := []string{
		"graph:\n  store_engine: rocksdb\n",
		"log:\n  level: loud\n",
		"log:\n  format: xml\n",
		"server:\n  rate_limit: -1\n",
		"unknown_section: true\n",
	}
	for _, c := range cases {
		_, err := Decode(strings.NewReader(c))
		assert.ErrorIs(t, err, ErrInvalidConfig, c)
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
