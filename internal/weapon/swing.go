package weapon

import (
	"math"

	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

const KindSwing = "sword_swing"

// SwingStyle picks the easing curve of a swing.
type SwingStyle int

const (
	SwingHorizontal SwingStyle = iota
	SwingOverhead
)

// Swing is an arc sweep between two absolute angles. It hits everything
// inside its reach once for as long as it lives.
type Swing struct {
	volume
	start, end float32 // degrees
	style      SwingStyle
	color      render.Color
}

type SwingParams struct {
	Reach      float32
	Damage     float32
	Duration   float32
	StartAngle float32 // degrees, absolute
	EndAngle   float32
	Style      SwingStyle
	Color      render.Color
}

func NewSwing(host world.Resolver, owner world.Entity, p SwingParams) *Swing {
	s := &Swing{
		volume: newVolume(KindSwing, host, owner, p.Reach, p.Damage, p.Duration),
		start:  p.StartAngle,
		end:    p.EndAngle,
		style:  p.Style,
		color:  p.Color,
	}
	s.trailEvery, s.trailLife = 0.02, 0.2
	return s
}

// Ease maps linear progress onto the swing's curve.
func (s *Swing) Ease(t float32) float32 {
	if s.style == SwingOverhead {
		return easeOverhead(t)
	}
	return easeCubicInOut(t)
}

// Angle is the current blade angle in degrees.
func (s *Swing) Angle() float32 {
	return geom.Lerp(s.start, s.end, s.Ease(s.Progress()))
}

func (s *Swing) tip() geom.Vec2 {
	return s.Position().Add(geom.FromAngle(s.Angle()).Scale(s.Radius()))
}

func (s *Swing) Update(dt float32) {
	if !s.advance(dt) {
		return
	}
	s.updateTrail(dt, s.tip())
}

func (s *Swing) OnCollision(other world.Entity) {
	s.strike(other)
}

func (s *Swing) Draw(c render.Canvas) {
	s.drawTrail(c, s.color)
	a := s.Angle()
	for off := float32(-30); off < 0; off += 5 {
		p := s.Position().Add(geom.FromAngle(a + off).Scale(s.Radius() * 0.8))
		c.Circle(p, 2, s.color)
	}
	tip := s.tip()
	c.Line(s.Position(), tip, s.color)
	c.Circle(tip, 8, s.color)
}

func easeCubicInOut(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}

// easeOverhead travels 30% of the arc during a slow 70% wind-up, then crashes
// through the rest with a quartic ease-out.
func easeOverhead(t float32) float32 {
	if t < 0.7 {
		n := t / 0.7
		return n * n * 0.3
	}
	n := (t - 0.7) / 0.3
	return 0.3 + (1-float32(math.Pow(float64(1-n), 4)))*0.7
}
