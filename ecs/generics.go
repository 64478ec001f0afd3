package ecs

import "github.com/milk9111/oneroom/ecs/component"

// Add stores a copy of value on e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	v := value
	return w.AddComponent(e, handle.Kind(), &v)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind())
}

// Get returns a pointer to the stored component; mutations are visible to later systems.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	value, ok := w.GetComponent(e, handle.Kind())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach calls fn for every live entity carrying the component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	for _, e := range w.Query(handle.Kind()) {
		if v, ok := Get(w, e, handle); ok {
			fn(e, v)
		}
	}
}

// Single returns the first entity carrying a singleton component and the component itself.
func Single[T any](w *World, handle component.ComponentHandle[T]) (Entity, *T, bool) {
	e, ok := w.First(handle.Kind())
	if !ok {
		return 0, nil, false
	}
	v, ok := Get(w, e, handle)
	if !ok {
		return 0, nil, false
	}
	return e, v, true
}
