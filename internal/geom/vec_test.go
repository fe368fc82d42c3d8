package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeZeroSafe(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())

	n := V(3, 4).Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-6)
	assert.InDelta(t, 0.8, n.Y, 1e-6)
}

func TestDirection(t *testing.T) {
	dir, dist := Direction(V(1, 1), V(1, 1))
	assert.True(t, dir.IsZero())
	assert.Zero(t, dist)

	dir, dist = Direction(V(0, 0), V(0, -10))
	assert.InDelta(t, 10, dist, 1e-6)
	assert.InDelta(t, -1, dir.Y, 1e-6)
}

func TestClamp(t *testing.T) {
	v := V(-5, 900).Clamp(V(20, 20), V(1260, 700))
	assert.Equal(t, V(20, 700), v)
}

func TestFromAngleRoundTrip(t *testing.T) {
	v := FromAngle(90)
	assert.InDelta(t, 0, v.X, 1e-6)
	assert.InDelta(t, 1, v.Y, 1e-6)
	assert.InDelta(t, 90, v.Angle(), 1e-4)
}
