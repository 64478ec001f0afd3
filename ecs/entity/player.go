package entity

import (
	"fmt"

	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/levels"
	"github.com/milk9111/oneroom/prefabs"
)

// NewPlayerAt creates the player standing with its feet centred on spawn.
func NewPlayerAt(w *ecs.World, spec prefabs.PlayerSpec, spawn levels.Point) (ecs.Entity, error) {
	fw, fh := spec.Sprite.Footprint()
	if fw <= 0 || fh <= 0 {
		return 0, fmt.Errorf("player: invalid footprint %vx%v", fw, fh)
	}

	layer := spec.RenderLayer.Index
	if layer == 0 {
		layer = component.LayerPlayer
	}

	e := w.CreateEntity()
	err := addAll(
		func() error { return ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerComponent, component.Player{
				RunSpeed:     spec.RunSpeed,
				JumpSpeed:    spec.JumpSpeed,
				ChimneySpeed: spec.ChimneySpeed,
				ChimneyAlpha: spec.ChimneyAlpha,
				SpriteW:      spec.Sprite.Width,
				SpriteH:      spec.Sprite.Height,
			})
		},
		func() error {
			return ecs.Add(w, e, component.BodyComponent, component.Body{
				X:        spawn.X - fw/2,
				Y:        spawn.Y - fh,
				W:        fw,
				H:        fh,
				Mass:     spec.Body.Mass,
				Bounce:   spec.Body.Bounce,
				Friction: spec.Body.Friction,
			})
		},
		func() error { return ecs.Add(w, e, component.InputComponent, component.Input{}) },
		func() error { return ecs.Add(w, e, component.FacingComponent, component.Facing{}) },
		func() error { return ecs.Add(w, e, component.GroundedComponent, component.Grounded{}) },
		func() error { return ecs.Add(w, e, component.ChimneyComponent, component.Chimney{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerStateMachineComponent, component.PlayerStateMachine{})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: layer})
		},
		func() error {
			return ecs.Add(w, e, component.AppearanceComponent, component.Appearance{
				Alpha:   1,
				Visible: true,
				Color:   string(spec.Color),
			})
		},
		func() error {
			return ecs.Add(w, e, component.AnimationComponent, component.Animation{Current: component.AnimationIdle})
		},
	)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

func addAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
