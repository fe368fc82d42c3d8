package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for game logic execution.
// Single-goroutine access only (game loop).
type Engine struct {
	vm   *lua.LState
	log  *zap.Logger
	wave int
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("WAVE", lua.LNumber(0))

	e := &Engine{vm: vm, log: log}

	// Load core scripts first, then feature scripts
	for _, sub := range []string{"core", "combat", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// SetWave publishes the current wave number to scripts as WAVE.
func (e *Engine) SetWave(n int) {
	e.wave = n
	e.vm.SetGlobal("WAVE", lua.LNumber(n))
}

func (e *Engine) Wave() int { return e.wave }

// EnemyAIContext holds pre-packed data for one enemy decision.
type EnemyAIContext struct {
	ID          uint64
	Template    string
	X, Y        float64
	TargetX     float64
	TargetY     float64
	TargetDist  float64
	HP          float64
	MaxHP       float64
	Speed       float64
	AttackRange float64
	HasWeapon   bool
	CanFire     bool
}

// AICommand is one command returned by enemy_ai.
// Type: "move" (DX, DY), "chase", "attack" (X, Y; zero = target), "idle".
type AICommand struct {
	Type string
	DX   float64
	DY   float64
	X    float64
	Y    float64
}

// RunEnemyAI calls Lua enemy_ai(ctx) and returns a list of commands. A nil
// result means "no opinion": the caller falls back to built-in behavior.
func (e *Engine) RunEnemyAI(ctx EnemyAIContext) []AICommand {
	fn := e.vm.GetGlobal("enemy_ai")
	if fn == lua.LNil {
		return nil
	}

	// Build context table
	t := e.vm.NewTable()
	t.RawSetString("id", lua.LNumber(ctx.ID))
	t.RawSetString("template", lua.LString(ctx.Template))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("target_x", lua.LNumber(ctx.TargetX))
	t.RawSetString("target_y", lua.LNumber(ctx.TargetY))
	t.RawSetString("target_dist", lua.LNumber(ctx.TargetDist))
	t.RawSetString("hp", lua.LNumber(ctx.HP))
	t.RawSetString("max_hp", lua.LNumber(ctx.MaxHP))
	t.RawSetString("speed", lua.LNumber(ctx.Speed))
	t.RawSetString("attack_range", lua.LNumber(ctx.AttackRange))
	t.RawSetString("has_weapon", lua.LBool(ctx.HasWeapon))
	t.RawSetString("can_fire", lua.LBool(ctx.CanFire))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua enemy_ai error", zap.Error(err), zap.Uint64("enemy", ctx.ID))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	// Parse commands array
	var cmds []AICommand
	rt.ForEach(func(_, v lua.LValue) {
		if row, ok := v.(*lua.LTable); ok {
			cmds = append(cmds, AICommand{
				Type: lStr(row, "type"),
				DX:   lNum(row, "dx"),
				DY:   lNum(row, "dy"),
				X:    lNum(row, "x"),
				Y:    lNum(row, "y"),
			})
		}
	})
	return cmds
}

// ScaleDamage calls Lua scale_damage(weapon, base, wave). Without the
// function, or on error, the base damage is returned unchanged.
func (e *Engine) ScaleDamage(weapon string, base float32) float32 {
	fn := e.vm.GetGlobal("scale_damage")
	if fn == lua.LNil {
		return base
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(weapon), lua.LNumber(base), lua.LNumber(e.wave)); err != nil {
		e.log.Error("lua scale_damage error", zap.Error(err), zap.String("weapon", weapon))
		return base
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		return base
	}
	return float32(n)
}

// WaveSize calls Lua wave_size(wave). Returns -1 when scripts do not define
// it, so callers use their configured progression.
func (e *Engine) WaveSize(wave int) int {
	if !e.HasFunc("wave_size") {
		return -1
	}
	return e.callIntFunc("wave_size", wave)
}

// --- Lua helpers ---

// lNum reads a numeric field from a Lua table.
func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// callIntFunc calls a Lua function with int args and returns an int result.
func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
