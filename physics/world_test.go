package physics

import (
	"testing"

	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld() *World {
	floor := []common.Rect{{X: 0, Y: 100, Width: 200, Height: 20}}
	return NewWorld(Config{Gravity: 600}, floor, common.Rect{Width: 200, Height: 120})
}

func addBody(t *testing.T, w *ecs.World, body component.Body) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.BodyComponent, body))
	return e
}

func TestBodyFallsAndRestsOnFloor(t *testing.T) {
	pw := newTestWorld()
	w := ecs.NewWorld()
	e := addBody(t, w, component.Body{X: 95, Y: 40, W: 10, H: 10, Mass: 1})

	for i := 0; i < 180; i++ {
		pw.Step(w)
	}

	body, ok := ecs.Get(w, e, component.BodyComponent)
	require.True(t, ok)
	assert.InDelta(t, 100.0, body.Bottom(), 1.5)
	assert.InDelta(t, 0.0, body.VY, 5.0)
	assert.True(t, body.BlockedBelow)
	assert.False(t, body.BlockedAbove)

	called := false
	assert.True(t, pw.Collide(w, e, func() { called = true }))
	assert.True(t, called)
}

func TestGhostBodyIgnoresGravityAndTerrain(t *testing.T) {
	pw := newTestWorld()
	w := ecs.NewWorld()
	e := addBody(t, w, component.Body{X: 95, Y: 90, W: 10, H: 10, VY: 120, Ghost: true})

	for i := 0; i < 30; i++ {
		pw.Step(w)
	}

	body, ok := ecs.Get(w, e, component.BodyComponent)
	require.True(t, ok)
	assert.InDelta(t, 120.0, body.VY, 1e-6)
	assert.InDelta(t, 150.0, body.Y, 1.0)
	assert.False(t, body.BlockedBelow)
	assert.False(t, pw.Collide(w, e, func() { t.Fatalf("ghost bodies never collide") }))
}

func TestAsleepBodiesStayOutOfTheSpace(t *testing.T) {
	pw := newTestWorld()
	w := ecs.NewWorld()
	e := addBody(t, w, component.Body{X: 10, Y: 10, W: 4, H: 4, Asleep: true})

	pw.Step(w)
	assert.Equal(t, 0, pw.Bodies())

	body, _ := ecs.Get(w, e, component.BodyComponent)
	assert.Equal(t, 10.0, body.Y)

	body.Asleep = false
	pw.Step(w)
	assert.Equal(t, 1, pw.Bodies())
	assert.Greater(t, body.Y, 10.0)

	w.DestroyEntity(e)
	pw.Step(w)
	assert.Equal(t, 0, pw.Bodies())
}
