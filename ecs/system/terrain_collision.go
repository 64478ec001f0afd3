package system

import (
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
)

// TerrainCollisionSystem steps the integrator, then re-classifies the player's
// footing both from the contact callback and unconditionally afterwards.
type TerrainCollisionSystem struct {
	Integrator Integrator
	Terrain    Terrain
}

func NewTerrainCollisionSystem(integrator Integrator, terrain Terrain) *TerrainCollisionSystem {
	return &TerrainCollisionSystem{Integrator: integrator, Terrain: terrain}
}

func (s *TerrainCollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.Integrator != nil {
		s.Integrator.Step(w)
	}

	for _, e := range w.Query(
		component.PlayerTagComponent.Kind(),
		component.BodyComponent.Kind(),
		component.GroundedComponent.Kind(),
	) {
		body, _ := ecs.Get(w, e, component.BodyComponent)
		grounded, _ := ecs.Get(w, e, component.GroundedComponent)
		chimney, _ := ecs.Get(w, e, component.ChimneyComponent)

		classify := func() {
			classifyInto(grounded, body, chimney, s.Terrain)
		}
		if s.Integrator != nil {
			s.Integrator.Collide(w, e, classify)
		}
		classify()
	}
}
