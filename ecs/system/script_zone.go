package system

import (
	"log"

	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
)

// ObjectiveEventPrefix prefixes the script event fired when the objective
// reaches a stage, as in "objective:leave_house".
const ObjectiveEventPrefix = "objective:"

// ScriptZoneSystem forwards zone entries and objective changes to the level
// script. Script errors are logged and never end the tick.
type ScriptZoneSystem struct {
	Runtime *ScriptRuntime

	// forwarded counts the pending events already handed over by the
	// objective pass this tick.
	forwarded int
}

func NewScriptZoneSystem(rt *ScriptRuntime) *ScriptZoneSystem {
	return &ScriptZoneSystem{Runtime: rt}
}

// Objectives returns a pass that forwards objective changes only. It runs
// ahead of the pause gate so the stage that completes the level still
// reaches the script.
func (s *ScriptZoneSystem) Objectives() ecs.System {
	return scriptObjectivePass{zones: s}
}

type scriptObjectivePass struct {
	zones *ScriptZoneSystem
}

func (p scriptObjectivePass) Update(w *ecs.World) {
	if p.zones == nil || w == nil {
		return
	}
	pending := w.Events().Pending()
	p.zones.dispatch(w, objectiveEvents(pending))
	p.zones.forwarded = len(pending)
}

func (s *ScriptZoneSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	pending := w.Events().Pending()
	if s.forwarded > len(pending) {
		s.forwarded = 0
	}
	fired := objectiveEvents(pending[s.forwarded:])
	s.forwarded = 0

	if player, ok := playerEntity(w); ok {
		if body, ok := ecs.Get(w, player, component.BodyComponent); ok {
			fired = append(fired, s.enteredZones(w, body)...)
		}
	}
	s.dispatch(w, fired)
}

func (s *ScriptZoneSystem) dispatch(w *ecs.World, fired []string) {
	if s.Runtime == nil || len(fired) == 0 {
		return
	}
	engine := buildScriptEngine(w)
	for _, name := range fired {
		if err := s.Runtime.Dispatch(engine, name); err != nil {
			log.Printf("script: %s: event %q: %v", s.Runtime.Path(), name, err)
		}
	}
}

func objectiveEvents(events []ecs.Event) []string {
	var names []string
	for _, evt := range events {
		if evt.Type != component.EventObjectiveChanged {
			continue
		}
		if change, ok := evt.Data.(component.ObjectiveChanged); ok {
			names = append(names, ObjectiveEventPrefix+change.To.String())
		}
	}
	return names
}

// enteredZones returns the events of zones the body walked into this tick.
func (s *ScriptZoneSystem) enteredZones(w *ecs.World, body *component.Body) []string {
	var names []string
	for _, e := range w.Query(component.ScriptZoneComponent.Kind(), component.TriggerComponent.Kind()) {
		zone, _ := ecs.Get(w, e, component.ScriptZoneComponent)
		trigger, _ := ecs.Get(w, e, component.TriggerComponent)

		inside := trigger.Area.Intersects(body.Rect())
		entered := inside && !zone.Inside
		zone.Inside = inside
		if !entered || (zone.Once && zone.Fired) || zone.Event == "" {
			continue
		}
		zone.Fired = true
		names = append(names, zone.Event)
	}
	return names
}
