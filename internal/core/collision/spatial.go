package collision

import (
	"math"

	"github.com/pushon/game/internal/geom"
)

// DefaultCellSize suits a 1280x720 arena with entity radii of 5-20.
const DefaultCellSize = 100

// Body is anything the hash can place: a center point is all it needs.
type Body interface {
	Position() geom.Vec2
}

// SpatialHash is a uniform-grid broad phase. It is rebuilt from scratch each
// frame and only ever holds the center cell of each body, so queries must
// use radius >= own radius + largest expected other radius.
// Accessed only from the game loop goroutine, no locks.
type SpatialHash[T Body] struct {
	cellSize float32
	cells    map[int64][]T
	used     []int64 // keys populated since the last Clear
}

// NewSpatialHash creates a hash with the given cell size (DefaultCellSize if <= 0).
func NewSpatialHash[T Body](cellSize float32) *SpatialHash[T] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialHash[T]{
		cellSize: cellSize,
		cells:    make(map[int64][]T, 64),
		used:     make([]int64, 0, 64),
	}
}

func (h *SpatialHash[T]) CellSize() float32 { return h.cellSize }

// HashCell packs signed cell coordinates into one key: x in the upper 32 bits,
// y in the lower 32.
func HashCell(x, y int32) int64 {
	return int64(x)<<32 | int64(uint32(y))
}

// CellOf floors a world position into cell coordinates.
func (h *SpatialHash[T]) CellOf(p geom.Vec2) (int32, int32) {
	return int32(math.Floor(float64(p.X / h.cellSize))),
		int32(math.Floor(float64(p.Y / h.cellSize)))
}

// Clear empties every bucket touched since the previous Clear. Bucket
// backing arrays are kept for the next frame.
func (h *SpatialHash[T]) Clear() {
	var zero T
	for _, k := range h.used {
		b := h.cells[k]
		for i := range b {
			b[i] = zero
		}
		h.cells[k] = b[:0]
	}
	h.used = h.used[:0]
}

// Insert appends b to the bucket of its center cell. O(1) amortized.
func (h *SpatialHash[T]) Insert(b T) {
	cx, cy := h.CellOf(b.Position())
	k := HashCell(cx, cy)
	bucket := h.cells[k]
	if len(bucket) == 0 {
		h.used = append(h.used, k)
	}
	h.cells[k] = append(bucket, b)
}

// QueryRadius returns every body in the (2*cellRadius+1)^2 cells around pos,
// where cellRadius = ceil(radius/cellSize). Candidates only; the caller runs
// the narrow phase.
func (h *SpatialHash[T]) QueryRadius(pos geom.Vec2, radius float32) []T {
	return h.AppendQuery(nil, pos, radius)
}

// AppendQuery is QueryRadius appending into dst, for callers that reuse a
// scratch slice across queries.
func (h *SpatialHash[T]) AppendQuery(dst []T, pos geom.Vec2, radius float32) []T {
	cx, cy := h.CellOf(pos)
	if radius < 0 {
		radius = 0
	}
	cr := int32(math.Ceil(float64(radius / h.cellSize)))
	for dy := -cr; dy <= cr; dy++ {
		for dx := -cr; dx <= cr; dx++ {
			if bucket, ok := h.cells[HashCell(cx+dx, cy+dy)]; ok {
				dst = append(dst, bucket...)
			}
		}
	}
	return dst
}

// Len returns the number of bodies currently indexed.
func (h *SpatialHash[T]) Len() int {
	n := 0
	for _, k := range h.used {
		n += len(h.cells[k])
	}
	return n
}
