package system

import (
	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
)

// PlayerControllerSystem runs the traversal state machine once per tick.
type PlayerControllerSystem struct {
	Audio audio.Cues
}

func NewPlayerControllerSystem(cues audio.Cues) *PlayerControllerSystem {
	if cues == nil {
		cues = audio.Silent{}
	}
	return &PlayerControllerSystem{Audio: cues}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.PlayerStateMachineComponent.Kind()) {
		ctx, machine, ok := playerContext(w, e, p.Audio)
		if !ok {
			continue
		}

		if machine.State == nil {
			machine.State = playerStateLocomotion
			machine.State.Enter(ctx)
		}

		machine.Pending = nil
		machine.State.HandleInput(ctx)
		if machine.Pending == nil {
			machine.State.Update(ctx)
		}
		if machine.Pending != nil {
			changePlayerState(ctx, machine, machine.Pending)
		}
	}
}

// playerContext gathers the player's components. It fails when any of the
// required ones is missing.
func playerContext(w *ecs.World, e ecs.Entity, cues audio.Cues) (*component.PlayerStateContext, *component.PlayerStateMachine, bool) {
	machine, ok := ecs.Get(w, e, component.PlayerStateMachineComponent)
	if !ok {
		return nil, nil, false
	}
	ctx := &component.PlayerStateContext{Audio: cues}
	if ctx.Audio == nil {
		ctx.Audio = audio.Silent{}
	}
	if ctx.Input, ok = ecs.Get(w, e, component.InputComponent); !ok {
		return nil, nil, false
	}
	if ctx.Player, ok = ecs.Get(w, e, component.PlayerComponent); !ok {
		return nil, nil, false
	}
	if ctx.Body, ok = ecs.Get(w, e, component.BodyComponent); !ok {
		return nil, nil, false
	}
	if ctx.Facing, ok = ecs.Get(w, e, component.FacingComponent); !ok {
		return nil, nil, false
	}
	if ctx.Grounded, ok = ecs.Get(w, e, component.GroundedComponent); !ok {
		return nil, nil, false
	}
	if ctx.Chimney, ok = ecs.Get(w, e, component.ChimneyComponent); !ok {
		return nil, nil, false
	}
	if ctx.Layer, ok = ecs.Get(w, e, component.RenderLayerComponent); !ok {
		return nil, nil, false
	}
	ctx.Appearance, _ = ecs.Get(w, e, component.AppearanceComponent)
	ctx.Animation, _ = ecs.Get(w, e, component.AnimationComponent)

	body := ctx.Body
	ctx.Fireplace = func() (common.Rect, bool) {
		return overlappingTrigger(w, component.TriggerFireplace, body.Rect())
	}
	ctx.ChangeState = func(state component.PlayerState) {
		machine.Pending = state
	}
	ctx.Emit = w.Emit
	return ctx, machine, true
}

func changePlayerState(ctx *component.PlayerStateContext, machine *component.PlayerStateMachine, next component.PlayerState) {
	machine.Pending = nil
	if next == nil || next == machine.State {
		return
	}
	if machine.State != nil {
		machine.State.Exit(ctx)
	}
	machine.State = next
	machine.State.Enter(ctx)
}

// overlappingTrigger returns the area of the first trigger of the given kind
// that overlaps r.
func overlappingTrigger(w *ecs.World, kind component.TriggerKind, r common.Rect) (common.Rect, bool) {
	for _, e := range w.Query(component.TriggerComponent.Kind()) {
		trigger, ok := ecs.Get(w, e, component.TriggerComponent)
		if !ok || trigger.Kind != kind {
			continue
		}
		if trigger.Area.Intersects(r) {
			return trigger.Area, true
		}
	}
	return common.Rect{}, false
}

func playerEntity(w *ecs.World) (ecs.Entity, bool) {
	return w.First(component.PlayerTagComponent.Kind())
}
