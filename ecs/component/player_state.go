package component

import (
	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/common"
)

// PlayerState defines the interface for player state machine states.
// Each state owns its own enter/exit, input handling, and update logic.
type PlayerState interface {
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	HandleInput(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext provides controlled access to the player's data for a state.
// Effects that reach outside the player go through callbacks.
type PlayerStateContext struct {
	Input      *Input
	Player     *Player
	Body       *Body
	Facing     *Facing
	Grounded   *Grounded
	Chimney    *Chimney
	Layer      *RenderLayer
	Appearance *Appearance
	Animation  *Animation

	// Fireplace is the fireplace trigger the body overlaps, if any.
	Fireplace func() (common.Rect, bool)

	ChangeState func(state PlayerState)
	Audio       audio.Cues
	Emit        func(eventType string, data any)
}

// PlayerStateMachine stores the active and pending states for the player.
type PlayerStateMachine struct {
	State   PlayerState
	Pending PlayerState
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()
