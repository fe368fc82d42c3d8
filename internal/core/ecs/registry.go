package ecs

// Sweeper is implemented by every derived cache so the Registry can drop
// dead entries from all of them at the sweep point.
type Sweeper interface {
	Name() string
	Sweep() int
}

// Registry tracks all derived caches and sweeps them together.
type Registry struct {
	caches []Sweeper
}

func NewRegistry() *Registry {
	return &Registry{
		caches: make([]Sweeper, 0, 4),
	}
}

// Register adds a cache to the registry.
func (r *Registry) Register(c Sweeper) {
	r.caches = append(r.caches, c)
}

// SweepAll drops dead entries from every registered cache and returns the
// total removed.
func (r *Registry) SweepAll() int {
	n := 0
	for _, c := range r.caches {
		n += c.Sweep()
	}
	return n
}

func (r *Registry) Len() int { return len(r.caches) }
