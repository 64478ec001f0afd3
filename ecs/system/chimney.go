package system

import (
	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
)

// ChimneySystem drives chimney traversal: it forces the vertical velocity,
// re-classifies the footing and finishes a climb when the far end is reached.
// Finishing a descent enters the house; finishing an ascent after delivery
// completes the level.
type ChimneySystem struct {
	Terrain Terrain
	Audio   audio.Cues
}

func NewChimneySystem(terrain Terrain, cues audio.Cues) *ChimneySystem {
	return &ChimneySystem{Terrain: terrain, Audio: cues}
}

func (s *ChimneySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	e, ok := playerEntity(w)
	if !ok {
		return
	}
	ctx, machine, ok := playerContext(w, e, s.Audio)
	if !ok || !ctx.Chimney.Active {
		return
	}

	direction := ctx.Chimney.Direction
	ctx.Body.VX = 0
	if direction == component.ChimneyUp {
		ctx.Body.VY = -ctx.Player.ChimneySpeed
	} else {
		ctx.Body.VY = ctx.Player.ChimneySpeed
	}
	classifyInto(ctx.Grounded, ctx.Body, ctx.Chimney, s.Terrain)

	switch {
	case direction == component.ChimneyDown && ctx.Grounded.Type == component.NormalGround:
		changePlayerState(ctx, machine, playerStateLocomotion)
		advanceObjective(w, component.EnterHouse)

	case direction == component.ChimneyUp && ctx.Grounded.Type == component.ChimneySurface:
		column := ctx.Grounded.Column
		changePlayerState(ctx, machine, playerStateLocomotion)
		ctx.Body.Y = column.Y - ctx.Body.H
		ctx.Body.VY = 0

		sessionEnt, session, ok := ecs.Single(w, component.SessionComponent)
		if !ok {
			return
		}
		objective, ok := ecs.Get(w, sessionEnt, component.ObjectiveComponent)
		if !ok || !objective.Delivered {
			return
		}
		if advanceObjective(w, component.LeaveHouse) {
			session.Paused = true
			w.Emit(component.EventLevelComplete, component.LevelComplete{LevelIndex: session.LevelIndex})
		}
	}
}

// advanceObjective moves the objective forward from stage and reports whether it did.
func advanceObjective(w *ecs.World, from component.ObjectiveStage) bool {
	sessionEnt, ok := w.First(component.SessionComponent.Kind())
	if !ok {
		return false
	}
	objective, ok := ecs.Get(w, sessionEnt, component.ObjectiveComponent)
	if !ok || !objective.Advance(from) {
		return false
	}
	w.Emit(component.EventObjectiveChanged, component.ObjectiveChanged{From: from, To: objective.Stage})
	return true
}
