package geom

import "math"

// Vec2 is a 2D world-space vector in float32 units.
type Vec2 struct {
	X, Y float32
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2  { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float32    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float32        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float32          { return float32(math.Sqrt(float64(v.LenSq()))) }
func (v Vec2) DistSq(o Vec2) float32 { return v.Sub(o).LenSq() }
func (v Vec2) IsZero() bool          { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector, or the zero vector unchanged (zero-safe).
func (v Vec2) Normalize() Vec2 {
	mag := v.Len()
	if mag == 0 {
		return v
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// Direction returns the unit vector from -> to along with the distance
// between them. A zero distance yields a zero direction.
func Direction(from, to Vec2) (Vec2, float32) {
	d := to.Sub(from)
	mag := d.Len()
	if mag == 0 {
		return Vec2{}, 0
	}
	return Vec2{d.X / mag, d.Y / mag}, mag
}

// FromAngle returns the unit vector for an angle in degrees.
func FromAngle(deg float32) Vec2 {
	rad := float64(deg) * math.Pi / 180
	return Vec2{float32(math.Cos(rad)), float32(math.Sin(rad))}
}

// Angle returns the heading of v in degrees.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)) * 180 / math.Pi)
}

// Clamp limits v to the rectangle [min, max] on both axes.
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	return Vec2{Clampf(v.X, min.X, max.X), Clampf(v.Y, min.Y, max.Y)}
}

func Clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
