package system

import (
	"testing"

	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/ecs/entity"
	"github.com/milk9111/oneroom/levels"
	"github.com/milk9111/oneroom/prefabs"
	"github.com/stretchr/testify/require"
)

// Ground is row 3 (y 96). A chimney cap sits at column 4, row 1 (x 128, y 32)
// with a passable chimney-top marker over it. Column 8, row 1 holds a solid
// tile that carries the chimney tag but is not passable.
const testTerrainJSON = `{
  "name": "test",
  "tile_size": 32,
  "tileset": {
    "1": {"name": "ground", "solid": true},
    "2": {"name": "cap", "solid": true},
    "3": {"name": "top", "tag": "chimney-top"},
    "4": {"name": "fake", "solid": true, "tag": "chimney-top"}
  },
  "legend": {"#": 1, "T": 2, "^": 3, "X": 4},
  "layers": [
    {"name": "platforms", "physics": true, "draw": 1, "rows": ["..........", "....T...X.", "..........", "##########"]},
    {"name": "objects", "physics": true, "draw": 2, "rows": ["..........", "....^.....", "..........", ".........."]}
  ]
}`

var capColumn = common.Rect{X: 128, Y: 32, Width: 32, Height: 32}

func testTerrain(t *testing.T) *levels.Tilemap {
	t.Helper()
	lvl, err := levels.Parse([]byte(testTerrainJSON))
	require.NoError(t, err)
	return levels.NewTilemap(lvl)
}

func testTuning() *prefabs.Tuning {
	return &prefabs.Tuning{
		Player: prefabs.PlayerSpec{
			RunSpeed:     150,
			JumpSpeed:    350,
			ChimneySpeed: 100,
			ChimneyAlpha: 0.4,
			Sprite:       prefabs.SpriteSpec{Width: 32, Height: 48, FootprintScaleX: 0.75, FootprintScaleY: 0.9},
			Body:         prefabs.BodySpec{Mass: 1, Bounce: 0.2},
			RenderLayer:  prefabs.RenderLayerSpec{Index: component.LayerPlayer},
		},
		Present: prefabs.PresentSpec{
			Count: 4,
			Size:  12,
			Throw: prefabs.ThrowSpec{SpreadX: 200, LaunchMin: 150, LaunchMax: 300, BounceMin: 0.2, BounceMax: 0.5, SpinMax: 8, Reward: 20},
			Drop:  prefabs.DropSpec{SpreadX: 50, LaunchMin: 20, LaunchMax: 60, Bounce: 0.1},
		},
		Jolly: prefabs.JollySpec{Start: 50},
	}
}

// stubIntegrator moves awake bodies by their velocity. Contact flags are left
// to the test.
type stubIntegrator struct {
	steps int
}

func (s *stubIntegrator) Step(w *ecs.World) {
	s.steps++
	ecs.ForEach(w, component.BodyComponent, func(e ecs.Entity, body *component.Body) {
		if body.Asleep {
			return
		}
		body.X += body.VX * common.TickSeconds
		body.Y += body.VY * common.TickSeconds
	})
}

func (s *stubIntegrator) Collide(w *ecs.World, e ecs.Entity, onCollide func()) bool {
	body, ok := ecs.Get(w, e, component.BodyComponent)
	if !ok || !body.BlockedBelow {
		return false
	}
	if onCollide != nil {
		onCollide()
	}
	return true
}

type testWorld struct {
	t        *testing.T
	w        *ecs.World
	terrain  *levels.Tilemap
	tuning   *prefabs.Tuning
	cues     *audio.Recorder
	session  ecs.Entity
	player   ecs.Entity
	presents []ecs.Entity

	collision  *TerrainCollisionSystem
	chimney    *ChimneySystem
	controller *PlayerControllerSystem
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	tw := &testWorld{
		t:       t,
		w:       ecs.NewWorld(),
		terrain: testTerrain(t),
		tuning:  testTuning(),
		cues:    audio.NewRecorder(),
	}
	var err error
	tw.session, err = entity.NewSession(tw.w, 0, tw.tuning.Jolly)
	require.NoError(t, err)
	tw.presents, err = entity.NewPresentPool(tw.w, tw.tuning.Present)
	require.NoError(t, err)
	tw.player, err = entity.NewPlayerAt(tw.w, tw.tuning.Player, levels.Point{X: 48, Y: 96})
	require.NoError(t, err)

	tw.collision = NewTerrainCollisionSystem(&stubIntegrator{}, tw.terrain)
	tw.chimney = NewChimneySystem(tw.terrain, tw.cues)
	tw.controller = NewPlayerControllerSystem(tw.cues)
	return tw
}

func (tw *testWorld) body() *component.Body {
	v, ok := ecs.Get(tw.w, tw.player, component.BodyComponent)
	require.True(tw.t, ok)
	return v
}

func (tw *testWorld) grounded() *component.Grounded {
	v, ok := ecs.Get(tw.w, tw.player, component.GroundedComponent)
	require.True(tw.t, ok)
	return v
}

func (tw *testWorld) chimneyState() *component.Chimney {
	v, ok := ecs.Get(tw.w, tw.player, component.ChimneyComponent)
	require.True(tw.t, ok)
	return v
}

func (tw *testWorld) objective() *component.Objective {
	v, ok := ecs.Get(tw.w, tw.session, component.ObjectiveComponent)
	require.True(tw.t, ok)
	return v
}

func (tw *testWorld) jolly() *component.Jolly {
	v, ok := ecs.Get(tw.w, tw.session, component.JollyComponent)
	require.True(tw.t, ok)
	return v
}

func (tw *testWorld) sessionState() *component.Session {
	v, ok := ecs.Get(tw.w, tw.session, component.SessionComponent)
	require.True(tw.t, ok)
	return v
}

func (tw *testWorld) state() string {
	machine, ok := ecs.Get(tw.w, tw.player, component.PlayerStateMachineComponent)
	require.True(tw.t, ok)
	if machine.State == nil {
		return ""
	}
	return machine.State.Name()
}

func (tw *testWorld) addTrigger(kind component.TriggerKind, area common.Rect) ecs.Entity {
	e := tw.w.CreateEntity()
	require.NoError(tw.t, ecs.Add(tw.w, e, component.TriggerComponent, component.Trigger{Kind: kind, Area: area}))
	return e
}

// standAt puts the player's feet at (centerX, bottom) resting on something.
func (tw *testWorld) standAt(centerX, bottom float64) {
	body := tw.body()
	body.X = centerX - body.W/2
	body.Y = bottom - body.H
	body.VX, body.VY = 0, 0
	body.BlockedBelow = true
}

func (tw *testWorld) setInput(in component.Input) {
	v, ok := ecs.Get(tw.w, tw.player, component.InputComponent)
	require.True(tw.t, ok)
	*v = in
}

// control runs only the traversal state machine.
func (tw *testWorld) control(in component.Input) {
	tw.setInput(in)
	tw.controller.Update(tw.w)
}

// tick runs collision, chimney processing and the state machine in order.
func (tw *testWorld) tick(in component.Input) []ecs.Event {
	tw.setInput(in)
	tw.collision.Update(tw.w)
	tw.chimney.Update(tw.w)
	tw.controller.Update(tw.w)
	return tw.w.Events().Drain()
}

func eventTypes(events []ecs.Event) []string {
	out := make([]string, 0, len(events))
	for _, evt := range events {
		out = append(out, evt.Type)
	}
	return out
}

func (tw *testWorld) facingLeft() bool {
	v, ok := ecs.Get(tw.w, tw.player, component.FacingComponent)
	require.True(tw.t, ok)
	return v.Left
}

func (tw *testWorld) layer() int {
	v, ok := ecs.Get(tw.w, tw.player, component.RenderLayerComponent)
	require.True(tw.t, ok)
	return v.Index
}

func (tw *testWorld) alpha() float64 {
	v, ok := ecs.Get(tw.w, tw.player, component.AppearanceComponent)
	require.True(tw.t, ok)
	return v.Alpha
}
