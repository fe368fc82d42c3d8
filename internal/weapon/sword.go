package weapon

import (
	"go.uber.org/zap"

	"github.com/pushon/game/internal/data"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

// Sword is a melee weapon cycling through a combo. Each Fire spawns the
// hit-volume of the current stage; the combo falls back to the first stage
// when the combo window passes without another attack.
type Sword struct {
	world.WeaponBase
	host  world.Host
	tmpl  data.WeaponTemplate
	scale DamageScaler
	log   *zap.Logger

	stage      int
	comboTimer float32
	swingTimer float32
}

func NewSword(host world.Host, t data.WeaponTemplate) *Sword {
	return &Sword{
		WeaponBase: world.NewWeaponBase(t.Name, t.Cooldown),
		host:       host,
		tmpl:       t,
		log:        zap.NewNop(),
	}
}

// Stage is the index of the combo step the next Fire will use.
func (s *Sword) Stage() int { return s.stage }

// Swinging reports whether the last attack is still in motion.
func (s *Sword) Swinging() bool { return s.swingTimer > 0 }

func (s *Sword) Fire(owner world.Entity, target geom.Vec2) {
	if !s.CanFire() || owner == nil || !owner.IsAlive() || len(s.tmpl.Combo) == 0 {
		return
	}
	dir, _ := geom.Direction(owner.Position(), target)
	if dir.IsZero() {
		dir = geom.V(1, 0)
	}
	step := s.tmpl.Combo[s.stage]
	dmg := scaled(s.scale, s.Name(), step.Damage)

	switch step.Style {
	case data.StyleSlam:
		s.host.QueueEntity(NewSlam(s.host, owner, dir, step.Range, dmg, step.Duration, s.log))
	default:
		aim := dir.Angle()
		style := SwingHorizontal
		if s.stage == len(s.tmpl.Combo)-1 && len(s.tmpl.Combo) > 1 {
			style = SwingOverhead
		}
		s.host.QueueEntity(NewSwing(s.host, owner, SwingParams{
			Reach:      step.Range,
			Damage:     dmg,
			Duration:   step.Duration,
			StartAngle: aim + step.StartAngle,
			EndAngle:   aim + step.EndAngle,
			Style:      style,
			Color:      swingColor(s.stage),
		}))
	}

	s.swingTimer = step.Duration
	s.comboTimer = s.tmpl.ComboWindow
	s.stage = (s.stage + 1) % len(s.tmpl.Combo)
	s.ResetCooldown()
}

func (s *Sword) Update(_ world.Entity, dt float32) {
	s.TickCooldown(dt)
	if s.swingTimer > 0 {
		s.swingTimer -= dt
	}
	if s.comboTimer > 0 {
		s.comboTimer -= dt
		if s.comboTimer <= 0 {
			s.comboTimer = 0
			s.stage = 0
		}
	}
}

// Draw shows the sheathed blade; an active swing draws itself.
func (s *Sword) Draw(c render.Canvas, ownerPos, aimDir geom.Vec2) {
	if s.Swinging() {
		return
	}
	c.Line(ownerPos, ownerPos.Add(aimDir.Scale(25)), render.ColorGray)
}

func swingColor(stage int) render.Color {
	switch stage {
	case 0:
		return render.ColorWhite
	case 1:
		return render.ColorLightGray
	default:
		return render.ColorGold
	}
}
