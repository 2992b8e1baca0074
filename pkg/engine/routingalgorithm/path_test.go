package routingalgorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPathFromMap(t *testing.T) {
	cases := []struct {
		name         string
		predecessors map[string]string
		start, goal  string
		want         []string
	}{
		{"self", map[string]string{}, "a", "a", []string{"a"}},
		{"goal without predecessor", map[string]string{"b": "a"}, "a", "c", []string{}},
		{"chain", map[string]string{"b": "a", "c": "b"}, "a", "c", []string{"a", "b", "c"}},
		{"broken chain", map[string]string{"c": "b"}, "a", "c", []string{}},
		{"cycle", map[string]string{"b": "c", "c": "b"}, "a", "c", []string{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ReconstructPathFromMap(c.predecessors, c.start, c.goal))
		})
	}
}

func TestReconstructPathIndexed(t *testing.T) {
	parent := []int32{-1, 0, 1, 1}
	pred := func(idx int32) (int32, bool) {
		return parent[idx], parent[idx] >= 0
	}

	assert.Equal(t, []int32{0, 1, 3}, ReconstructPath(pred, 0, 3, len(parent)))
	assert.Equal(t, []int32{}, ReconstructPath(pred, 2, 3, len(parent)))
}

func TestPathDistance(t *testing.T) {
	g := shortcutGraph(t)
	idx := func(id string) int32 {
		i, _ := g.GetNodeIDX(id)
		return i
	}

	d, ok := pathDistance(g, []int32{idx("a"), idx("b"), idx("c"), idx("d")})
	assert.True(t, ok)
	assert.Equal(t, 3.0, d)

	_, ok = pathDistance(g, []int32{idx("d"), idx("a")})
	assert.False(t, ok)

	d, ok = pathDistance(g, []int32{idx("a")})
	assert.True(t, ok)
	assert.Equal(t, 0.0, d)
}
