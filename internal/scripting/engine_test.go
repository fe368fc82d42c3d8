package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, root, sub, name, body string) {
	t.Helper()
	dir := filepath.Join(root, sub)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestEngineWithoutScripts(t *testing.T) {
	e, err := NewEngine(t.TempDir(), nil)
	require.NoError(t, err)
	defer e.Close()

	assert.False(t, e.HasFunc("enemy_ai"))
	assert.Nil(t, e.RunEnemyAI(EnemyAIContext{ID: 1}))
	assert.Equal(t, float32(25), e.ScaleDamage("Gun", 25))
	assert.Equal(t, -1, e.WaveSize(3))
}

func TestEngineLoadError(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "combat", "broken.lua", "function (")
	_, err := NewEngine(root, nil)
	assert.ErrorContains(t, err, "load combat scripts")
}

func TestRunEnemyAI(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "ai", "enemy.lua", `
function enemy_ai(ctx)
  if ctx.template ~= "grunt" then return nil end
  return {
    { type = "move", dx = ctx.target_x - ctx.x, dy = 0 },
    { type = "attack", x = 7, y = 8 },
  }
end
`)
	e, err := NewEngine(root, nil)
	require.NoError(t, err)
	defer e.Close()

	cmds := e.RunEnemyAI(EnemyAIContext{ID: 3, Template: "grunt", X: 10, TargetX: 40})
	require.Len(t, cmds, 2)
	assert.Equal(t, "move", cmds[0].Type)
	assert.Equal(t, 30.0, cmds[0].DX)
	assert.Equal(t, AICommand{Type: "attack", X: 7, Y: 8}, cmds[1])

	assert.Nil(t, e.RunEnemyAI(EnemyAIContext{Template: "brute"}))
}

func TestRunEnemyAIRuntimeErrorFallsBack(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "ai", "enemy.lua", `function enemy_ai(ctx) error("boom") end`)
	e, err := NewEngine(root, nil)
	require.NoError(t, err)
	defer e.Close()
	assert.Nil(t, e.RunEnemyAI(EnemyAIContext{}))
}

func TestScaleDamageUsesWave(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "combat", "damage.lua", `
function scale_damage(weapon, base, wave)
  if weapon == "Sword" then return base * 2 end
  return base + wave
end
`)
	writeScript(t, root, "core", "waves.lua", `function wave_size(n) return n * 2 end`)
	e, err := NewEngine(root, nil)
	require.NoError(t, err)
	defer e.Close()

	e.SetWave(4)
	assert.Equal(t, 4, e.Wave())
	assert.Equal(t, float32(29), e.ScaleDamage("Gun", 25))
	assert.Equal(t, float32(80), e.ScaleDamage("Sword", 40))
	assert.Equal(t, 6, e.WaveSize(3))
}

func TestShippedScripts(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), nil)
	require.NoError(t, err)
	defer e.Close()

	assert.True(t, e.HasFunc("enemy_ai"))
	assert.Equal(t, 1, e.WaveSize(1))
	e.SetWave(1)
	assert.Equal(t, float32(25), e.ScaleDamage("Gun", 25))

	cmds := e.RunEnemyAI(EnemyAIContext{Template: "grunt", HP: 10, MaxHP: 100, X: 50, TargetX: 100, TargetDist: 50, AttackRange: 200, CanFire: true, HasWeapon: true})
	require.Len(t, cmds, 2)
	assert.Equal(t, "move", cmds[0].Type)
	assert.Less(t, cmds[0].DX, 0.0, "flees away from the target")
	assert.Equal(t, "attack", cmds[1].Type)
}
