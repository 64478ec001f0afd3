package system

import (
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
)

// PauseGate ends the tick while the session is paused. Collision and chimney
// processing have already run, so props keep settling.
var PauseGate = ecs.GateFunc(func(w *ecs.World) bool {
	_, session, ok := ecs.Single(w, component.SessionComponent)
	return !ok || !session.Paused
})

// RestartGate ends the tick once a restart has been requested.
var RestartGate = ecs.GateFunc(func(w *ecs.World) bool {
	_, session, ok := ecs.Single(w, component.SessionComponent)
	return !ok || !session.RestartPending
})
