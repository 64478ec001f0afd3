package ecs

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Gate is a System that can end a Scheduler pass early.
type Gate interface {
	System
	Open(w *World) bool
}

// GateFunc adapts a predicate into a Gate; the pass stops when it returns false.
type GateFunc func(w *World) bool

func (GateFunc) Update(*World) {}

func (g GateFunc) Open(w *World) bool {
	return g(w)
}

// Scheduler runs systems in a fixed order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one pass and reports whether every system ran.
func (s *Scheduler) Update(w *World) bool {
	for _, system := range s.systems {
		if gate, ok := system.(Gate); ok {
			if !gate.Open(w) {
				return false
			}
			continue
		}
		system.Update(w)
	}
	return true
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
