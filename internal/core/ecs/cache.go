package ecs

// Mortal is the minimum an entry needs for a cache to sweep it.
type Mortal interface {
	IsAlive() bool
}

// Cache is an ordered, non-owning list of typed references. Insertion order
// is kept, which makes "first encountered wins" queries deterministic.
// No reflect, no type switches: entries are added by their own kind.
type Cache[T Mortal] struct {
	name  string
	items []T
}

func NewCache[T Mortal](name string) *Cache[T] {
	return &Cache[T]{name: name, items: make([]T, 0, 16)}
}

func (c *Cache[T]) Name() string { return c.name }

func (c *Cache[T]) Add(item T) {
	c.items = append(c.items, item)
}

// Items returns the backing slice. Callers must not hold it across a Sweep.
func (c *Cache[T]) Items() []T { return c.items }

func (c *Cache[T]) Len() int { return len(c.items) }

func (c *Cache[T]) Each(fn func(T)) {
	for _, it := range c.items {
		fn(it)
	}
}

// Sweep drops every entry that is no longer alive, keeping survivor order,
// and returns how many were dropped.
func (c *Cache[T]) Sweep() int {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.IsAlive() {
			kept = append(kept, it)
		}
	}
	removed := len(c.items) - len(kept)
	var zero T
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = kept
	return removed
}
