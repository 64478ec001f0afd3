package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/levels"
	"github.com/milk9111/oneroom/prefabs"
)

const (
	EntityFireplace      = "fireplace"
	EntityDeliveryTarget = "delivery_target"
	EntityScriptZone     = "script_zone"
)

// NewTriggers creates the trigger volumes of a level. A level without a
// fireplace or delivery target still loads but cannot be won; that is logged.
func NewTriggers(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	var ents []ecs.Entity
	seen := map[component.TriggerKind]bool{}

	for i, def := range lvl.Entities {
		var kind component.TriggerKind
		switch def.Type {
		case EntityFireplace:
			kind = component.TriggerFireplace
		case EntityDeliveryTarget:
			kind = component.TriggerDelivery
		case EntityScriptZone:
			kind = component.TriggerScript
		default:
			log.Printf("entity: level %q: unknown entity type %q at index %d", lvl.Name, def.Type, i)
			continue
		}
		if def.Area().Empty() {
			return nil, fmt.Errorf("entity: level %q: %s at index %d has no area", lvl.Name, def.Type, i)
		}

		e, err := newTrigger(w, kind, def)
		if err != nil {
			return nil, fmt.Errorf("entity: level %q: %s at index %d: %w", lvl.Name, def.Type, i, err)
		}
		seen[kind] = true
		ents = append(ents, e)
	}

	for _, kind := range []component.TriggerKind{component.TriggerFireplace, component.TriggerDelivery} {
		if !seen[kind] {
			log.Printf("entity: level %q has no %s trigger; level is unwinnable", lvl.Name, kind)
		}
	}
	return ents, nil
}

func newTrigger(w *ecs.World, kind component.TriggerKind, def levels.Entity) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TriggerComponent, component.Trigger{Kind: kind, Area: def.Area()}); err != nil {
		return 0, err
	}

	if kind == component.TriggerScript {
		props, err := prefabs.DecodeProps[prefabs.ScriptZoneProps](def.Props)
		if err != nil {
			return 0, err
		}
		if props.Event == "" {
			return 0, fmt.Errorf("script zone needs an event")
		}
		if err := ecs.Add(w, e, component.ScriptZoneComponent, component.ScriptZone{Event: props.Event, Once: props.Once}); err != nil {
			return 0, err
		}
		return e, addTriggerAppearance(w, e, props.Color)
	}

	props, err := prefabs.DecodeProps[prefabs.TriggerProps](def.Props)
	if err != nil {
		return 0, err
	}
	return e, addTriggerAppearance(w, e, props.Color)
}

func addTriggerAppearance(w *ecs.World, e ecs.Entity, color prefabs.HexColor) error {
	if color == "" {
		return nil
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, component.Appearance{Alpha: 1, Visible: true, Color: string(color)}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: component.LayerProps - 1})
}
