package ecs

import "github.com/milk9111/oneroom/ecs/component"

// World owns entities, their components, and the tick's event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.stores {
		set.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities lists every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	set := w.stores[kind.ID()]
	if set == nil {
		set = &SparseSet{}
		w.stores[kind.ID()] = set
	}
	set.Set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	set := w.stores[kind.ID()]
	if set == nil {
		return nil, false
	}
	v := set.Get(e)
	return v, v != nil
}

func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if w == nil || kind == nil {
		return false
	}
	set := w.stores[kind.ID()]
	if set == nil {
		return false
	}
	return set.Remove(e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Emit queues an event for the current tick.
func (w *World) Emit(eventType string, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: eventType, Data: data})
}
