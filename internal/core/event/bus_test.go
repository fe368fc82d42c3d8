package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type hit struct{ Damage int }
type died struct{ Name string }

func TestEventsDeliveredNextFrame(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(h hit) { got = append(got, h.Damage) })

	Emit(b, hit{Damage: 5})
	Emit(b, hit{Damage: 7})
	assert.Equal(t, 2, b.Pending())

	// Same frame: nothing dispatched yet.
	b.DispatchAll()
	assert.Empty(t, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{5, 7}, got)
	assert.Zero(t, b.Pending())

	// Front buffer is consumed once.
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{5, 7}, got)
}

func TestDispatchKeepsTypeOrder(t *testing.T) {
	b := NewBus()
	var log []string
	Subscribe(b, func(d died) { log = append(log, "died:"+d.Name) })
	Subscribe(b, func(h hit) { log = append(log, "hit") })

	Emit(b, died{Name: "grunt"})
	Emit(b, hit{Damage: 1})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, []string{"died:grunt", "hit"}, log)
}

func TestEmitWithoutSubscribers(t *testing.T) {
	b := NewBus()
	Emit(b, hit{Damage: 1})
	b.SwapBuffers()
	assert.NotPanics(t, b.DispatchAll)
}

func TestHandlerEmitsWaitForNextFrame(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(h hit) {
		got = append(got, h.Damage)
		if h.Damage < 3 {
			Emit(b, hit{Damage: h.Damage + 1})
		}
	})

	Emit(b, hit{Damage: 1})
	for i := 0; i < 4; i++ {
		b.SwapBuffers()
		b.DispatchAll()
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Zero(t, b.Pending())
}
