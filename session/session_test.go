package session

import (
	"errors"
	"testing"

	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/levels"
	"github.com/milk9111/oneroom/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTuning(t *testing.T) *prefabs.Tuning {
	t.Helper()
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	return tuning
}

// jollyLoader loads the embedded levels with the meter overridden.
func jollyLoader(start, decayEvery int) func(string) (*levels.Level, error) {
	return func(name string) (*levels.Level, error) {
		lvl, err := levels.LoadLevelFromFS(name)
		if err != nil {
			return nil, err
		}
		lvl.Jolly = &levels.JollyDef{Start: start, DecayEvery: decayEvery}
		return lvl, nil
	}
}

func TestNewSessionRequiresInput(t *testing.T) {
	_, err := New(0, nil, testTuning(t), nil, 1, nil)
	assert.Error(t, err)

	lvl, err := levels.LoadLevelFromFS("01_rooftops")
	require.NoError(t, err)
	_, err = New(0, lvl, nil, nil, 1, nil)
	assert.Error(t, err)
}

func TestPlayerSettlesOnSpawnFloor(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("01_rooftops")
	require.NoError(t, err)
	s, err := New(0, lvl, testTuning(t), nil, 1, nil)
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		s.Tick(component.Input{})
	}

	assert.Equal(t, component.NormalGround, s.Grounded())
	assert.InDelta(t, lvl.Spawn.Y, s.PlayerBody().Bottom(), 1.0)
	assert.Equal(t, "locomotion", s.PlayerState())
	assert.Equal(t, 60, s.State().Frame)
}

func TestPausedSessionSkipsPlayerControl(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("01_rooftops")
	require.NoError(t, err)
	s, err := New(0, lvl, testTuning(t), nil, 1, nil)
	require.NoError(t, err)

	s.State().Paused = true
	for i := 0; i < 10; i++ {
		s.Tick(component.Input{Right: true})
	}
	assert.True(t, s.Paused())
	assert.Equal(t, 0.0, s.PlayerBody().VX)
	assert.Equal(t, component.EnterHouse, s.Objective().Stage)
	assert.Equal(t, 10, s.State().Frame)
}

func TestControllerStartIsRangeChecked(t *testing.T) {
	c, err := NewController(testTuning(t), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, c.LevelCount())
	assert.Equal(t, "01_rooftops", c.LevelName(0))
	assert.Equal(t, "", c.LevelName(5))

	assert.Error(t, c.Start(-1))
	assert.Error(t, c.Start(c.LevelCount()))

	events, err := c.Tick(component.Input{})
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Nil(t, c.Session(), "menu until a level is started")
}

func TestControllerTransitionsApplyAtTickBoundary(t *testing.T) {
	c, err := NewController(testTuning(t), Options{})
	require.NoError(t, err)

	require.NoError(t, c.Start(0))
	assert.Nil(t, c.Session())

	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	require.NotNil(t, c.Session())
	assert.Equal(t, 0, c.Session().Index)

	first := c.Session()
	c.Advance()
	assert.Same(t, first, c.Session())
	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Session().Index)

	c.Advance()
	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Session().Index, "advancing past the last level stays on it")

	c.ReturnToMenu()
	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	assert.Nil(t, c.Session())

	c.Restart()
	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	assert.Nil(t, c.Session(), "restart from the menu does nothing")
}

func TestDepletedMeterRestartsLevel(t *testing.T) {
	cues := audio.NewRecorder()
	c, err := NewController(testTuning(t), Options{Load: jollyLoader(3, 1), Audio: cues})
	require.NoError(t, err)
	require.NoError(t, c.Start(0))

	var depleted int
	for i := 0; i < 3; i++ {
		events, err := c.Tick(component.Input{})
		require.NoError(t, err)
		for _, evt := range events {
			if evt.Type == component.EventMeterDepleted {
				depleted++
			}
		}
	}
	require.Equal(t, 1, depleted)
	old := c.Session()
	assert.True(t, old.State().RestartPending)
	assert.Equal(t, 0, old.Jolly().Value)
	assert.Equal(t, 1, cues.Count(audio.CueDepleted))

	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	fresh := c.Session()
	require.NotSame(t, old, fresh)
	assert.Equal(t, 0, fresh.Index)
	assert.Equal(t, 2, fresh.Jolly().Value)
	assert.False(t, fresh.Jolly().Depleted)
	assert.False(t, fresh.State().RestartPending)
	assert.Equal(t, component.EnterHouse, fresh.Objective().Stage)
}

func TestMutedControllerPlaysNothing(t *testing.T) {
	cues := audio.NewRecorder()
	c, err := NewController(testTuning(t), Options{Load: jollyLoader(1, 1), Audio: cues, Muted: true})
	require.NoError(t, err)
	require.NoError(t, c.Start(0))

	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	assert.True(t, c.Session().State().RestartPending)
	assert.Empty(t, cues.Played)
}

func TestControllerReportsLoadErrors(t *testing.T) {
	boom := errors.New("boom")
	c, err := NewController(testTuning(t), Options{
		Levels: []string{"broken"},
		Load:   func(string) (*levels.Level, error) { return nil, boom },
	})
	require.NoError(t, err)
	require.NoError(t, c.Start(0))

	_, err = c.Tick(component.Input{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, c.Session())
}

func TestSetTuningAppliesToNextSession(t *testing.T) {
	tuning := testTuning(t)
	c, err := NewController(tuning, Options{})
	require.NoError(t, err)
	require.NoError(t, c.Start(0))
	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	assert.Len(t, c.Session().Entities.Presents, tuning.Present.Count)

	changed := *tuning
	changed.Present.Count = 2
	c.SetTuning(&changed)
	assert.Len(t, c.Session().Entities.Presents, tuning.Present.Count)

	c.Restart()
	_, err = c.Tick(component.Input{})
	require.NoError(t, err)
	assert.Len(t, c.Session().Entities.Presents, 2)
}

func TestNewControllerValidation(t *testing.T) {
	_, err := NewController(nil, Options{})
	assert.Error(t, err)
}

func TestControllerPauseKeepsCollisionsRunning(t *testing.T) {
	c, err := NewController(testTuning(t), Options{})
	require.NoError(t, err)
	c.SetPaused(true) // no session yet
	require.NoError(t, c.Start(0))
	_, err = c.Tick(component.Input{})
	require.NoError(t, err)

	s := c.Session()
	body := s.PlayerBody()
	body.Y -= 96
	lifted := body.Bottom()
	startJolly := s.Jolly().Value

	c.SetPaused(true)
	for i := 0; i < 90; i++ {
		_, err := c.Tick(component.Input{Right: true})
		require.NoError(t, err)
	}
	assert.True(t, s.Paused())
	assert.Greater(t, s.PlayerBody().Bottom(), lifted, "the player keeps falling while paused")
	assert.Equal(t, 0.0, s.PlayerBody().VX, "control is gated")
	assert.Equal(t, startJolly, s.Jolly().Value, "the meter is gated")

	c.SetPaused(false)
	_, err = c.Tick(component.Input{Right: true})
	require.NoError(t, err)
	assert.False(t, s.Paused())
	assert.Greater(t, s.PlayerBody().VX, 0.0)
}

func triggerArea(t *testing.T, s *LevelSession, kind component.TriggerKind) common.Rect {
	t.Helper()
	for _, e := range s.World.Query(component.TriggerComponent.Kind()) {
		trigger, _ := ecs.Get(s.World, e, component.TriggerComponent)
		if trigger.Kind == kind {
			return trigger.Area
		}
	}
	t.Fatalf("no %v trigger", kind)
	return common.Rect{}
}

// tickUntil holds input until done reports true, collecting every event.
func tickUntil(t *testing.T, s *LevelSession, in component.Input, limit int, done func() bool) []ecs.Event {
	t.Helper()
	var events []ecs.Event
	for i := 0; i < limit; i++ {
		if done() {
			return events
		}
		events = append(events, s.Tick(in)...)
	}
	require.True(t, done(), "condition not met after %d ticks", limit)
	return events
}

func scriptMessages(events []ecs.Event) []string {
	var msgs []string
	for _, evt := range events {
		if msg, ok := evt.Data.(string); ok && evt.Type == component.EventScriptMessage {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func TestRooftopsPlaythrough(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("01_rooftops")
	require.NoError(t, err)
	s, err := New(0, lvl, testTuning(t), nil, 1, nil)
	require.NoError(t, err)
	s.Tick(component.Input{})

	fireplace := triggerArea(t, s, component.TriggerFireplace)
	delivery := triggerArea(t, s, component.TriggerDelivery)

	// Stand on the chimney cap above the fireplace.
	body := s.PlayerBody()
	body.X = 496 - body.W/2
	body.Y = 128 - body.H
	body.VX, body.VY = 0, 0
	tickUntil(t, s, component.Input{}, 30, func() bool {
		return s.Grounded() == component.ChimneySurface
	})

	var events []ecs.Event
	events = append(events, tickUntil(t, s, component.Input{Down: true}, 600, func() bool {
		return s.Objective().Stage == component.PlacePresents
	})...)
	assert.Equal(t, "locomotion", s.PlayerState())

	events = append(events, tickUntil(t, s, component.Input{Right: true}, 200, func() bool {
		return s.PlayerBody().Rect().Intersects(delivery)
	})...)
	events = append(events, tickUntil(t, s, component.Input{Down: true}, 10, func() bool {
		return s.Objective().Stage == component.LeaveHouse
	})...)
	assert.True(t, s.Objective().Delivered)

	events = append(events, tickUntil(t, s, component.Input{Left: true}, 200, func() bool {
		b := s.PlayerBody()
		return b.Rect().Intersects(fireplace) && b.CenterX() < fireplace.CenterX()+16
	})...)
	events = append(events, tickUntil(t, s, component.Input{}, 60, func() bool {
		return s.PlayerBody().BlockedBelow
	})...)
	events = append(events, tickUntil(t, s, component.Input{Up: true}, 600, func() bool {
		return s.Objective().Stage == component.Done
	})...)

	assert.True(t, s.Paused())
	assert.Equal(t, component.ChimneySurface, s.Grounded())
	assert.InDelta(t, 128, s.PlayerBody().Bottom(), 1.0)

	types := map[string]int{}
	for _, evt := range events {
		types[evt.Type]++
	}
	assert.Equal(t, 1, types[component.EventPresentsDelivered])
	assert.Equal(t, 1, types[component.EventLevelComplete])
	assert.Equal(t, 3, types[component.EventObjectiveChanged])

	msgs := scriptMessages(events)
	assert.Contains(t, msgs, "Back up the chimney.")
	assert.Contains(t, msgs, "Merry Christmas!")

	// A completed level cannot be resumed.
	s.SetPaused(false)
	assert.True(t, s.Paused())
}

func TestPhysicsIntegratorWallsFollowLevelBounds(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("01_rooftops")
	require.NoError(t, err)
	tm := levels.NewTilemap(lvl)

	w := ecs.NewWorld()
	require.NoError(t, ecs.Add(w, w.CreateEntity(), component.LevelBoundsComponent, component.LevelBounds{
		Area: common.Rect{Width: 200, Height: tm.Bounds().Height},
	}))
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.BodyComponent, component.Body{
		X: 120, Y: 512 - 20, W: 20, H: 20, VX: 300, Mass: 1,
	}))

	integ := PhysicsIntegrator(w, tm, testTuning(t).World)
	for i := 0; i < 60; i++ {
		integ.Step(w)
	}

	body, ok := ecs.Get(w, e, component.BodyComponent)
	require.True(t, ok)
	assert.LessOrEqual(t, body.X+body.W, 201.0)
}
