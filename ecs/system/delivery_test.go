package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deliveryArea = common.Rect{X: 0, Y: 64, Width: 96, Height: 32}

func deliveryWorld(t *testing.T) (*testWorld, *DeliverySystem) {
	t.Helper()
	tw := newTestWorld(t)
	tw.addTrigger(component.TriggerDelivery, deliveryArea)
	tw.standAt(48, 96)
	require.True(t, tw.objective().Advance(component.EnterHouse))
	return tw, NewDeliverySystem(rand.New(rand.NewSource(42)), tw.tuning.Present)
}

func TestDeliveryThrow(t *testing.T) {
	tw, sys := deliveryWorld(t)
	tw.body().VY = -20
	tw.setInput(component.Input{Up: true})

	sys.Update(tw.w)

	throw := tw.tuning.Present.Throw
	for _, e := range tw.presents {
		body, ok := ecs.Get(tw.w, e, component.BodyComponent)
		require.True(t, ok)
		present, _ := ecs.Get(tw.w, e, component.PresentComponent)

		assert.False(t, body.Asleep)
		assert.True(t, present.Launched)
		assert.True(t, present.Thrown)
		assert.InDelta(t, tw.body().CenterX(), body.CenterX(), 1e-9)
		assert.GreaterOrEqual(t, body.VX, -throw.SpreadX)
		assert.LessOrEqual(t, body.VX, throw.SpreadX)
		assert.GreaterOrEqual(t, body.VY, -throw.LaunchMax-20)
		assert.LessOrEqual(t, body.VY, -throw.LaunchMin-20)
		assert.GreaterOrEqual(t, body.Bounce, throw.BounceMin)
		assert.LessOrEqual(t, body.Bounce, throw.BounceMax)
		assert.GreaterOrEqual(t, body.Spin, -throw.SpinMax)
		assert.LessOrEqual(t, body.Spin, throw.SpinMax)
	}

	assert.Equal(t, 50+throw.Reward, tw.jolly().Value)
	assert.Equal(t, component.LeaveHouse, tw.objective().Stage)
	assert.True(t, tw.objective().Delivered)

	events := tw.w.Events().Drain()
	require.Contains(t, eventTypes(events), component.EventPresentsDelivered)
	for _, evt := range events {
		if evt.Type == component.EventPresentsDelivered {
			assert.Equal(t, component.PresentsDelivered{Thrown: true, Count: 4, Reward: throw.Reward}, evt.Data)
		}
	}

	sys.Update(tw.w)
	assert.Equal(t, 50+throw.Reward, tw.jolly().Value, "delivery happens once")
	assert.Empty(t, tw.w.Events().Drain())
}

func TestDeliveryDrop(t *testing.T) {
	tw, sys := deliveryWorld(t)
	tw.setInput(component.Input{Down: true})

	sys.Update(tw.w)

	drop := tw.tuning.Present.Drop
	for _, e := range tw.presents {
		body, _ := ecs.Get(tw.w, e, component.BodyComponent)
		present, _ := ecs.Get(tw.w, e, component.PresentComponent)
		assert.True(t, present.Launched)
		assert.False(t, present.Thrown)
		assert.Equal(t, drop.Bounce, body.Bounce)
		assert.Equal(t, 0.0, body.Spin)
		assert.GreaterOrEqual(t, body.VY, -drop.LaunchMax)
		assert.LessOrEqual(t, body.VY, -drop.LaunchMin)
	}
	assert.Equal(t, 50, tw.jolly().Value)
	assert.Equal(t, component.LeaveHouse, tw.objective().Stage)
}

func TestDeliveryIsDeterministicForSeed(t *testing.T) {
	velocities := func() []float64 {
		tw, sys := deliveryWorld(t)
		tw.setInput(component.Input{Up: true})
		sys.Update(tw.w)
		var out []float64
		for _, e := range tw.presents {
			body, _ := ecs.Get(tw.w, e, component.BodyComponent)
			out = append(out, body.VX, body.VY)
		}
		return out
	}
	assert.Equal(t, velocities(), velocities())
}

func TestDeliveryPreconditions(t *testing.T) {
	cases := []struct {
		name  string
		setup func(tw *testWorld)
	}{
		{name: "no key held", setup: func(tw *testWorld) { tw.setInput(component.Input{Left: true}) }},
		{name: "outside the target", setup: func(tw *testWorld) {
			tw.setInput(component.Input{Up: true})
			tw.standAt(250, 96)
		}},
		{name: "house not entered", setup: func(tw *testWorld) {
			tw.setInput(component.Input{Up: true})
			tw.objective().Stage = component.EnterHouse
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tw, sys := deliveryWorld(t)
			tc.setup(tw)
			stage := tw.objective().Stage

			sys.Update(tw.w)

			assert.Equal(t, stage, tw.objective().Stage)
			assert.Equal(t, 50, tw.jolly().Value)
			for _, e := range tw.presents {
				body, _ := ecs.Get(tw.w, e, component.BodyComponent)
				assert.True(t, body.Asleep)
			}
		})
	}
}
