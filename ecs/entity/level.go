package entity

import (
	"fmt"

	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/levels"
	"github.com/milk9111/oneroom/prefabs"
)

// LevelEntities are the entities a level build produced.
type LevelEntities struct {
	Session  ecs.Entity
	Player   ecs.Entity
	Presents []ecs.Entity
	Triggers []ecs.Entity
}

// LoadLevelToWorld populates an empty world with everything one level needs:
// the session singleton, bounds, triggers, the player and the present pool.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, tm *levels.Tilemap, index int, tuning *prefabs.Tuning) (*LevelEntities, error) {
	if w == nil || lvl == nil || tm == nil || tuning == nil {
		return nil, fmt.Errorf("entity: incomplete level build input")
	}
	out := &LevelEntities{}

	session, err := NewSession(w, index, jollyFor(lvl, tuning.Jolly))
	if err != nil {
		return nil, err
	}
	out.Session = session

	if boundsEntity := w.CreateEntity(); boundsEntity.Valid() {
		if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent, component.LevelBounds{Area: tm.Bounds()}); err != nil {
			return nil, err
		}
	}

	if out.Triggers, err = NewTriggers(w, lvl); err != nil {
		return nil, err
	}
	if out.Presents, err = NewPresentPool(w, tuning.Present); err != nil {
		return nil, err
	}
	if out.Player, err = NewPlayerAt(w, tuning.Player, lvl.Spawn); err != nil {
		return nil, err
	}
	return out, nil
}

// NewSession creates the per-level singleton holding the session flags, the
// objective and the jolly meter.
func NewSession(w *ecs.World, index int, jolly prefabs.JollySpec) (ecs.Entity, error) {
	e := w.CreateEntity()
	meter := component.Jolly{DecayEvery: jolly.DecayEvery}
	meter.Set(jolly.Start)

	err := addAll(
		func() error { return ecs.Add(w, e, component.SessionComponent, component.Session{LevelIndex: index}) },
		func() error { return ecs.Add(w, e, component.ObjectiveComponent, component.Objective{}) },
		func() error { return ecs.Add(w, e, component.JollyComponent, meter) },
	)
	if err != nil {
		return 0, fmt.Errorf("session: %w", err)
	}
	return e, nil
}

func jollyFor(lvl *levels.Level, base prefabs.JollySpec) prefabs.JollySpec {
	if lvl.Jolly == nil {
		return base
	}
	out := base
	if lvl.Jolly.Start > 0 {
		out.Start = lvl.Jolly.Start
	}
	if lvl.Jolly.DecayEvery > 0 {
		out.DecayEvery = lvl.Jolly.DecayEvery
	}
	return out
}
