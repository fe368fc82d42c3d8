package weapon

import (
	"math"

	"go.uber.org/zap"

	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

const KindSlam = "sword_slam"

const (
	slamWindup     = 0.6  // fraction of the duration spent raising the blade
	slamHitFrom    = 0.9  // damage is only dealt from here on
	slamImpactAt   = 0.95 // visual impact flash
	slamWindupLift = 60
)

// Slam raises the blade behind the owner, then crashes it down in front.
// Unlike a swing it only deals damage during the impact phase.
type Slam struct {
	volume
	dir      geom.Vec2
	impacted bool
	landing  bool // frame overshot the hit window; expires on the next Update
	log      *zap.Logger
}

func NewSlam(host world.Resolver, owner world.Entity, dir geom.Vec2, reach, damage, duration float32, log *zap.Logger) *Slam {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Slam{
		volume: newVolume(KindSlam, host, owner, reach, damage, duration),
		dir:    dir,
		log:    log,
	}
	s.trailEvery, s.trailLife = 0.015, 0.15
	return s
}

// ImpactPoint is where the blade lands, one reach in front of the owner.
func (s *Slam) ImpactPoint() geom.Vec2 {
	return s.Position().Add(s.dir.Scale(s.Radius()))
}

// Impacted reports whether the blade has landed.
func (s *Slam) Impacted() bool { return s.impacted }

// BladePosition is the blade tip for the current progress.
func (s *Slam) BladePosition() geom.Vec2 {
	p := s.Progress()
	raised := s.Position().Add(s.dir.Scale(-slamWindupLift))
	if p < slamWindup {
		n := p / slamWindup
		return s.Position().Add(s.dir.Scale(-slamWindupLift * n * n))
	}
	n := (p - slamWindup) / (1 - slamWindup)
	eased := 1 - float32(math.Pow(float64(1-n), 4))
	impact := s.ImpactPoint()
	return geom.V(geom.Lerp(raised.X, impact.X, eased), geom.Lerp(raised.Y, impact.Y, eased))
}

func (s *Slam) Update(dt float32) {
	if s.landing {
		s.Kill()
		return
	}
	if s.Progress() < slamHitFrom && s.lifetime+dt >= s.duration {
		// A long frame would expire the slam before the hit window is
		// ever seen by a collision pass. Land at full progress instead.
		s.landing = true
		s.lifetime = s.duration
		s.follow()
	} else if !s.advance(dt) {
		return
	}
	s.updateTrail(dt, s.BladePosition())
	if !s.impacted && s.Progress() >= slamImpactAt {
		s.impacted = true
		s.log.Debug("slam impact", zap.Stringer("owner", s.Owner()), zap.Int("hits", s.HitCount()))
	}
}

func (s *Slam) OnCollision(other world.Entity) {
	if s.Progress() < slamHitFrom {
		return
	}
	s.strike(other)
}

func (s *Slam) Draw(c render.Canvas) {
	s.drawTrail(c, render.ColorOrange)
	p := s.Progress()
	blade := s.BladePosition()
	if p < slamWindup {
		c.Circle(s.ImpactPoint(), 15*p/slamWindup, render.ColorOrange)
	}
	if p >= slamImpactAt {
		flash := 1 - (p-slamImpactAt)/(1-slamImpactAt)
		c.Circle(s.ImpactPoint(), 60*flash, render.ColorWhite)
	}
	c.Line(s.Position(), blade, render.ColorOrange)
	c.Circle(blade, 12, render.ColorOrange)
}
