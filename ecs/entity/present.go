package entity

import (
	"fmt"

	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/prefabs"
)

// NewPresentPool creates the stowed presents. They stay asleep and hidden
// until delivery launches them.
func NewPresentPool(w *ecs.World, spec prefabs.PresentSpec) ([]ecs.Entity, error) {
	if spec.Count < 0 {
		return nil, fmt.Errorf("present: negative count %d", spec.Count)
	}
	size := spec.Size
	if size <= 0 {
		size = 12
	}
	layer := spec.RenderLayer.Index
	if layer == 0 {
		layer = component.LayerProps
	}

	ents := make([]ecs.Entity, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		color := ""
		if len(spec.Colors) > 0 {
			color = string(spec.Colors[i%len(spec.Colors)])
		}

		e := w.CreateEntity()
		err := addAll(
			func() error { return ecs.Add(w, e, component.PresentComponent, component.Present{Slot: i}) },
			func() error {
				return ecs.Add(w, e, component.BodyComponent, component.Body{
					W:        size,
					H:        size,
					Mass:     spec.Body.Mass,
					Bounce:   spec.Body.Bounce,
					Friction: spec.Body.Friction,
					Rotates:  true,
					Asleep:   true,
				})
			},
			func() error {
				return ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: layer})
			},
			func() error {
				return ecs.Add(w, e, component.AppearanceComponent, component.Appearance{Alpha: 1, Color: color})
			},
		)
		if err != nil {
			return nil, fmt.Errorf("present %d: %w", i, err)
		}
		ents = append(ents, e)
	}
	return ents, nil
}
