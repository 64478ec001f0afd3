package session

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/ecs/entity"
	"github.com/milk9111/oneroom/ecs/system"
	"github.com/milk9111/oneroom/levels"
	"github.com/milk9111/oneroom/physics"
	"github.com/milk9111/oneroom/prefabs"
)

// IntegratorFactory builds the body integrator for a level once its entities
// are in w.
type IntegratorFactory func(w *ecs.World, tm *levels.Tilemap, spec prefabs.WorldSpec) system.Integrator

// PhysicsIntegrator is the default factory, backed by Chipmunk. The outer
// walls follow the world's LevelBounds.
func PhysicsIntegrator(w *ecs.World, tm *levels.Tilemap, spec prefabs.WorldSpec) system.Integrator {
	var bounds common.Rect
	if _, lb, ok := ecs.Single(w, component.LevelBoundsComponent); ok {
		bounds = lb.Area
	}
	return physics.NewWorld(physics.Config{
		Gravity:    spec.Gravity,
		Iterations: spec.Iterations,
	}, tm.SolidRuns(), bounds)
}

// LevelSession is all the state of one attempt at one level. It is thrown
// away on restart, advance or return to menu.
type LevelSession struct {
	Index    int
	Level    *levels.Level
	Tilemap  *levels.Tilemap
	World    *ecs.World
	Entities *entity.LevelEntities

	scheduler *ecs.Scheduler
}

// New builds a session. Seed drives present launches so replays with the
// same input are identical.
func New(index int, lvl *levels.Level, tuning *prefabs.Tuning, cues audio.Cues, seed int64, integrator IntegratorFactory) (*LevelSession, error) {
	if lvl == nil || tuning == nil {
		return nil, fmt.Errorf("session: missing level or tuning")
	}
	if cues == nil {
		cues = audio.Silent{}
	}
	if integrator == nil {
		integrator = PhysicsIntegrator
	}

	tm := levels.NewTilemap(lvl)
	w := ecs.NewWorld()
	ents, err := entity.LoadLevelToWorld(w, lvl, tm, index, tuning)
	if err != nil {
		return nil, fmt.Errorf("session: level %q: %w", lvl.Name, err)
	}

	var script *system.ScriptRuntime
	if lvl.Script != "" {
		script, err = system.LoadScriptRuntime(lvl.Script)
		if err != nil {
			return nil, fmt.Errorf("session: level %q: %w", lvl.Name, err)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	scripts := system.NewScriptZoneSystem(script)
	scheduler := ecs.NewScheduler(
		system.NewTerrainCollisionSystem(integrator(w, tm, tuning.World), tm),
		system.NewChimneySystem(tm, cues),
		scripts.Objectives(),
		system.PauseGate,
		system.NewDeliverySystem(rng, tuning.Present),
		scripts,
		system.NewJollySystem(),
		system.RestartGate,
		system.NewPlayerControllerSystem(cues),
	)

	return &LevelSession{
		Index:     index,
		Level:     lvl,
		Tilemap:   tm,
		World:     w,
		Entities:  ents,
		scheduler: scheduler,
	}, nil
}

// Tick runs one simulation step with the given held input and returns the
// events it produced.
func (s *LevelSession) Tick(input component.Input) []ecs.Event {
	if state := s.State(); state != nil {
		state.Frame++
	}
	if in, ok := ecs.Get(s.World, s.Entities.Player, component.InputComponent); ok {
		*in = input
	}
	s.scheduler.Update(s.World)
	return s.World.Events().Drain()
}

func (s *LevelSession) State() *component.Session {
	v, _ := ecs.Get(s.World, s.Entities.Session, component.SessionComponent)
	return v
}

func (s *LevelSession) Objective() *component.Objective {
	v, _ := ecs.Get(s.World, s.Entities.Session, component.ObjectiveComponent)
	return v
}

func (s *LevelSession) Jolly() *component.Jolly {
	v, _ := ecs.Get(s.World, s.Entities.Session, component.JollyComponent)
	return v
}

func (s *LevelSession) PlayerBody() *component.Body {
	v, _ := ecs.Get(s.World, s.Entities.Player, component.BodyComponent)
	return v
}

func (s *LevelSession) Grounded() component.GroundedType {
	v, ok := ecs.Get(s.World, s.Entities.Player, component.GroundedComponent)
	if !ok {
		return component.Airborne
	}
	return v.Type
}

// PlayerState names the traversal state the player is in.
func (s *LevelSession) PlayerState() string {
	machine, ok := ecs.Get(s.World, s.Entities.Player, component.PlayerStateMachineComponent)
	if !ok || machine.State == nil {
		return "locomotion"
	}
	return machine.State.Name()
}

// SetPaused toggles the pause flag. A completed level stays paused.
func (s *LevelSession) SetPaused(paused bool) {
	state := s.State()
	if state == nil {
		return
	}
	if !paused {
		if obj := s.Objective(); obj != nil && obj.Stage == component.Done {
			return
		}
	}
	state.Paused = paused
}

func (s *LevelSession) Paused() bool {
	state := s.State()
	return state != nil && state.Paused
}
