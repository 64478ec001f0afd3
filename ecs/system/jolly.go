package system

import (
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
)

// JollySystem applies the meter's decay cadence and requests a restart when
// the meter runs out, however it got there.
type JollySystem struct{}

func NewJollySystem() *JollySystem {
	return &JollySystem{}
}

func (s *JollySystem) Update(w *ecs.World) {
	e, session, ok := ecs.Single(w, component.SessionComponent)
	if !ok || session.RestartPending {
		return
	}
	jolly, ok := ecs.Get(w, e, component.JollyComponent)
	if !ok {
		return
	}

	if !jolly.Advance() {
		return
	}
	session.RestartPending = true
	w.Emit(component.EventMeterDepleted, nil)
}
