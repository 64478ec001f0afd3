package system

import (
	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/ecs/component"
)

// Player state singletons.
var (
	playerStateLocomotion     component.PlayerState = &playerLocomotionState{}
	playerStateChimneyAscend  component.PlayerState = &playerChimneyState{direction: component.ChimneyUp}
	playerStateChimneyDescend component.PlayerState = &playerChimneyState{direction: component.ChimneyDown}
)

type playerLocomotionState struct{}

type playerChimneyState struct {
	direction component.ChimneyDirection
}

// horizontalVelocity resolves left and right into a run velocity. Left wins
// when both are held.
func horizontalVelocity(input *component.Input, speed float64) float64 {
	switch {
	case input.Left:
		return -speed
	case input.Right:
		return speed
	}
	return 0
}

func (playerLocomotionState) Name() string { return "locomotion" }
func (playerLocomotionState) Enter(ctx *component.PlayerStateContext) {
	if ctx.Animation != nil {
		ctx.Animation.Play(component.AnimationIdle)
	}
}
func (playerLocomotionState) Exit(ctx *component.PlayerStateContext) {}
func (playerLocomotionState) HandleInput(ctx *component.PlayerStateContext) {
	body, input := ctx.Body, ctx.Input
	body.VX = horizontalVelocity(input, ctx.Player.RunSpeed)

	// Down is checked first so it wins over up on a chimney top.
	if input.Down && ctx.Grounded.Type == component.ChimneySurface {
		ctx.ChangeState(playerStateChimneyDescend)
		return
	}

	if input.Up && body.BlockedBelow {
		if _, ok := ctx.Fireplace(); ok {
			ctx.ChangeState(playerStateChimneyAscend)
			return
		}
		body.VY = -ctx.Player.JumpSpeed
		ctx.Audio.Play(audio.CueJump)
	}
}
func (playerLocomotionState) Update(ctx *component.PlayerStateContext) {
	vx := ctx.Body.VX
	if vx < 0 && !ctx.Facing.Left {
		ctx.Facing.Left = true
	} else if vx > 0 && ctx.Facing.Left {
		ctx.Facing.Left = false
	}

	if vx != 0 {
		if !ctx.Audio.IsPlaying(audio.CueFootstep) {
			ctx.Audio.Play(audio.CueFootstep)
		}
		if ctx.Animation != nil {
			ctx.Animation.Play(component.AnimationRun)
		}
		return
	}
	if ctx.Audio.IsPlaying(audio.CueFootstep) {
		ctx.Audio.Pause(audio.CueFootstep)
	}
	if ctx.Animation != nil {
		ctx.Animation.Play(component.AnimationIdle)
	}
}

func (s *playerChimneyState) Name() string {
	if s.direction == component.ChimneyUp {
		return "chimney_ascend"
	}
	return "chimney_descend"
}

func (s *playerChimneyState) velocity(ctx *component.PlayerStateContext) float64 {
	if s.direction == component.ChimneyUp {
		return -ctx.Player.ChimneySpeed
	}
	return ctx.Player.ChimneySpeed
}

func (s *playerChimneyState) Enter(ctx *component.PlayerStateContext) {
	body := ctx.Body

	// Line the body up with the shaft.
	if s.direction == component.ChimneyDown && !ctx.Grounded.Column.Empty() {
		body.X = ctx.Grounded.Column.CenterX() - body.W/2
	} else if s.direction == component.ChimneyUp {
		if fireplace, ok := ctx.Fireplace(); ok {
			body.X = fireplace.CenterX() - body.W/2
		}
	}

	ctx.Chimney.Active = true
	ctx.Chimney.Direction = s.direction
	ctx.Chimney.OriginalLayer = ctx.Layer.Index

	body.Ghost = true
	body.VX = 0
	body.VY = s.velocity(ctx)

	from := ctx.Layer.Index
	ctx.Layer.Index = component.LayerBehindMiddleground
	if ctx.Appearance != nil {
		ctx.Appearance.Alpha = ctx.Player.ChimneyAlpha
	}
	if ctx.Animation != nil {
		ctx.Animation.Play(component.AnimationIdle)
	}
	ctx.Audio.Stop(audio.CueFootstep)

	ctx.Emit(component.EventChimneyEntered, component.ChimneyChanged{Direction: s.direction})
	ctx.Emit(component.EventLayerChanged, component.LayerChanged{From: from, To: ctx.Layer.Index})
}

func (s *playerChimneyState) Exit(ctx *component.PlayerStateContext) {
	from := ctx.Layer.Index
	ctx.Layer.Index = ctx.Chimney.OriginalLayer

	ctx.Chimney.Active = false
	ctx.Chimney.Direction = 0
	ctx.Body.Ghost = false
	if ctx.Appearance != nil {
		ctx.Appearance.Alpha = 1
		ctx.Appearance.Visible = true
	}

	ctx.Emit(component.EventChimneyExited, component.ChimneyChanged{Direction: s.direction})
	ctx.Emit(component.EventLayerChanged, component.LayerChanged{From: from, To: ctx.Layer.Index})
}

func (s *playerChimneyState) HandleInput(ctx *component.PlayerStateContext) {
	ctx.Body.VX = 0
	ctx.Body.VY = s.velocity(ctx)
}

func (s *playerChimneyState) Update(ctx *component.PlayerStateContext) {
	if ctx.Animation != nil {
		ctx.Animation.Play(component.AnimationIdle)
	}
}
