package system

import (
	"github.com/pushon/game/internal/actor"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/scripting"
)

// ScriptBrain lets Lua decide enemy behavior: Go packs the enemy's view of
// the world, Lua returns commands, Go turns them into an Intent. Enemies
// fall back to their built-in chase when the script has no opinion.
type ScriptBrain struct {
	engine *scripting.Engine
}

func NewScriptBrain(e *scripting.Engine) *ScriptBrain {
	return &ScriptBrain{engine: e}
}

func (b *ScriptBrain) Decide(s actor.Sense) (actor.Intent, bool) {
	cmds := b.engine.RunEnemyAI(scripting.EnemyAIContext{
		ID:          uint64(s.ID),
		Template:    s.Template,
		X:           float64(s.Position.X),
		Y:           float64(s.Position.Y),
		TargetX:     float64(s.Target.X),
		TargetY:     float64(s.Target.Y),
		TargetDist:  float64(s.TargetDist),
		HP:          float64(s.Health),
		MaxHP:       float64(s.MaxHealth),
		Speed:       float64(s.Speed),
		AttackRange: float64(s.AttackRange),
		HasWeapon:   s.HasWeapon,
		CanFire:     s.CanFire,
	})
	if cmds == nil {
		return actor.Intent{}, false
	}
	return intentOf(s, cmds), true
}

// intentOf folds commands in order; a later move overrides an earlier one.
func intentOf(s actor.Sense, cmds []scripting.AICommand) actor.Intent {
	var in actor.Intent
	for _, cmd := range cmds {
		switch cmd.Type {
		case "move":
			in.Move = geom.V(float32(cmd.DX), float32(cmd.DY))
		case "chase":
			in.Move, _ = geom.Direction(s.Position, s.Target)
		case "attack":
			in.Attack = true
			in.AttackAt = geom.V(float32(cmd.X), float32(cmd.Y))
			if in.AttackAt.IsZero() {
				in.AttackAt = s.Target
			}
		case "idle":
			in.Move = geom.Vec2{}
		}
	}
	return in
}
