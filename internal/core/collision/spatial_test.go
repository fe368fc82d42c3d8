package collision

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushon/game/internal/geom"
)

type dot struct {
	id  int
	pos geom.Vec2
	r   float32
}

func (d *dot) Position() geom.Vec2 { return d.pos }

func TestHashCellNoCollisions(t *testing.T) {
	seen := make(map[int64][2]int32)
	for x := int32(-3); x <= 3; x++ {
		for y := int32(-3); y <= 3; y++ {
			k := HashCell(x, y)
			prev, dup := seen[k]
			require.False(t, dup, "(%d,%d) collides with %v", x, y, prev)
			seen[k] = [2]int32{x, y}
		}
	}
}

func TestCellOfFloorsNegatives(t *testing.T) {
	h := NewSpatialHash[*dot](100)
	cx, cy := h.CellOf(geom.V(-0.5, 99.9))
	assert.Equal(t, int32(-1), cx)
	assert.Equal(t, int32(0), cy)
}

func TestInsertQueryClear(t *testing.T) {
	h := NewSpatialHash[*dot](100)
	a := &dot{id: 1, pos: geom.V(10, 10)}
	b := &dot{id: 2, pos: geom.V(150, 10)}
	far := &dot{id: 3, pos: geom.V(900, 900)}
	h.Insert(a)
	h.Insert(b)
	h.Insert(far)
	require.Equal(t, 3, h.Len())

	got := h.QueryRadius(geom.V(20, 20), 40)
	assert.ElementsMatch(t, []*dot{a, b}, got)

	h.Clear()
	assert.Zero(t, h.Len())
	assert.Empty(t, h.QueryRadius(geom.V(20, 20), 1000))
}

func TestQueryCellRadiusGrowsWithRadius(t *testing.T) {
	h := NewSpatialHash[*dot](100)
	far := &dot{pos: geom.V(250, 0)}
	h.Insert(far)
	// ceil(100/100) = 1 cell: (2,0) is out of reach from cell (0,0).
	assert.Empty(t, h.QueryRadius(geom.V(0, 0), 100))
	// ceil(101/100) = 2 cells.
	assert.Len(t, h.QueryRadius(geom.V(0, 0), 101), 1)
}

// Every pair whose circles truly intersect must be reported by a query of
// own radius + max other radius. False positives are fine.
func TestQueryRadiusHasNoFalseNegatives(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := NewSpatialHash[*dot](DefaultCellSize)
	const maxR = 20
	dots := make([]*dot, 600)
	for i := range dots {
		dots[i] = &dot{
			id:  i,
			pos: geom.V(rng.Float32()*1280-100, rng.Float32()*720-100),
			r:   5 + rng.Float32()*(maxR-5),
		}
		h.Insert(dots[i])
	}

	for _, a := range dots {
		candidates := make(map[int]bool)
		for _, c := range h.QueryRadius(a.pos, a.r+maxR) {
			candidates[c.id] = true
		}
		for _, b := range dots {
			if a == b || !Overlaps(a.pos, a.r, b.pos, b.r) {
				continue
			}
			require.True(t, candidates[b.id], "dot %d missed overlapping dot %d", a.id, b.id)
		}
	}
}

func TestClearReusesBuckets(t *testing.T) {
	h := NewSpatialHash[*dot](50)
	for frame := 0; frame < 3; frame++ {
		h.Clear()
		for i := 0; i < 10; i++ {
			h.Insert(&dot{pos: geom.V(float32(i*60), 0)})
		}
		assert.Equal(t, 10, h.Len())
	}
}
