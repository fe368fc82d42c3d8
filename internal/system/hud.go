package system

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	coresys "github.com/pushon/game/internal/core/system"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

// RenderSystem redraws the world and the HUD on top of it. Phase 6 (Output).
type RenderSystem struct {
	world    *world.Manager
	surface  render.Surface
	score    *Score
	director *Director
	bounds   geom.Vec2
	p        *message.Printer
}

func NewRenderSystem(m *world.Manager, s render.Surface, bounds geom.Vec2) *RenderSystem {
	return &RenderSystem{
		world:   m,
		surface: s,
		bounds:  bounds,
		p:       message.NewPrinter(language.English),
	}
}

// Track adds wave and score lines to the HUD. Either may be nil.
func (r *RenderSystem) Track(d *Director, s *Score) {
	r.director = d
	r.score = s
}

func (r *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (r *RenderSystem) Update(_ time.Duration) {
	r.surface.Clear()
	r.world.DrawEntities(r.surface)
	r.drawHUD()
	r.surface.Show()
}

func (r *RenderSystem) drawHUD() {
	c := r.surface
	y := float32(16)
	line := func(s string, col render.Color) {
		c.Text(geom.V(10, y), s, col)
		y += 20
	}
	if r.director != nil {
		line(r.p.Sprintf("Wave %d", r.director.Wave()), render.ColorWhite)
	}
	if r.score != nil {
		line(r.p.Sprintf("Score %d", r.score.Points()), render.ColorGold)
	}
	line(r.p.Sprintf("Enemies %d", len(r.world.Enemies())), render.ColorLightGray)

	for _, pl := range r.world.Players() {
		col := render.PlayerColors[pl.Number()%len(render.PlayerColors)]
		s := r.p.Sprintf("P%d %.0f/%.0f", pl.Number()+1, pl.Health(), pl.MaxHealth())
		if w := pl.Weapon().Get(); w != nil {
			s += " " + w.Name()
		}
		if r.score != nil {
			s += r.p.Sprintf(" %d", r.score.PlayerPoints(pl.ID()))
		}
		line(s, col)
	}

	if r.score != nil && r.score.GameOver() {
		mid := r.bounds.Scale(0.5)
		c.Text(mid, "GAME OVER", render.ColorRed)
		c.Text(mid.Add(geom.V(0, 24)), r.p.Sprintf("%d kills, %d points", r.score.Kills(), r.score.Points()), render.ColorWhite)
	}
}
