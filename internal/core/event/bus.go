package event

import (
	"reflect"
	"sync"
)

type handler func(any)

// queue holds the events of one type for one frame.
type queue struct {
	events   []any
	handlers []handler
}

// Bus is a double-buffered event bus. Events emitted in frame N are
// dispatched in frame N+1: SwapBuffers then DispatchAll run once at the start
// of each frame, so handlers never observe a half-finished phase.
type Bus struct {
	mu     sync.Mutex // only protects handler registration
	queues map[reflect.Type]*queue
	order  []*queue // first-seen order keeps dispatch deterministic
	front  [][]any  // per queue in order, swapped in by SwapBuffers
}

func NewBus() *Bus {
	return &Bus{queues: make(map[reflect.Type]*queue)}
}

func (b *Bus) queueOf(t reflect.Type) *queue {
	q, ok := b.queues[t]
	if !ok {
		q = &queue{}
		b.queues[t] = q
		b.order = append(b.order, q)
		b.front = append(b.front, nil)
	}
	return q
}

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Emit queues an event for the next frame.
func Emit[T any](b *Bus, event T) {
	q := b.queueOf(typeOf[T]())
	q.events = append(q.events, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.queueOf(typeOf[T]())
	q.handlers = append(q.handlers, func(ev any) { fn(ev.(T)) })
}

// SwapBuffers makes everything emitted so far dispatchable and starts a new
// frame's buffer. The previous front buffers are recycled.
func (b *Bus) SwapBuffers() {
	for i, q := range b.order {
		b.front[i], q.events = q.events, b.front[i][:0]
	}
}

// DispatchAll delivers the front buffer to subscribed handlers: event types
// in first-seen order, events of a type in emit order. Events emitted by
// handlers wait for the next swap.
func (b *Bus) DispatchAll() {
	for i, q := range b.order {
		for _, ev := range b.front[i] {
			for _, h := range q.handlers {
				h(ev)
			}
		}
		clear(b.front[i])
		b.front[i] = b.front[i][:0]
	}
}

// Pending returns how many events wait for the next swap.
func (b *Bus) Pending() int {
	n := 0
	for _, q := range b.order {
		n += len(q.events)
	}
	return n
}
