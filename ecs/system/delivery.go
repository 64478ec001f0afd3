package system

import (
	"math/rand"

	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/prefabs"
)

// DeliverySystem places the presents once the player reaches the delivery
// target with up (throw) or down (drop) held.
type DeliverySystem struct {
	Rand  *rand.Rand
	Throw prefabs.ThrowSpec
	Drop  prefabs.DropSpec
}

func NewDeliverySystem(rng *rand.Rand, spec prefabs.PresentSpec) *DeliverySystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &DeliverySystem{Rand: rng, Throw: spec.Throw, Drop: spec.Drop}
}

func (s *DeliverySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	sessionEnt, ok := w.First(component.SessionComponent.Kind())
	if !ok {
		return
	}
	objective, ok := ecs.Get(w, sessionEnt, component.ObjectiveComponent)
	if !ok || objective.Stage != component.PlacePresents || objective.Delivered {
		return
	}

	player, ok := playerEntity(w)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent)
	if !ok || (!input.Up && !input.Down) {
		return
	}
	body, ok := ecs.Get(w, player, component.BodyComponent)
	if !ok {
		return
	}
	if _, ok := overlappingTrigger(w, component.TriggerDelivery, body.Rect()); !ok {
		return
	}

	throw := input.Up
	count := s.launch(w, body, throw)

	reward := 0
	if throw {
		reward = s.Throw.Reward
		if jolly, ok := ecs.Get(w, sessionEnt, component.JollyComponent); ok {
			jolly.Add(reward)
		}
	}

	if advanceObjective(w, component.PlacePresents) {
		w.Emit(component.EventPresentsDelivered, component.PresentsDelivered{Thrown: throw, Count: count, Reward: reward})
	}
}

// launch wakes every pooled present at the player's centre and gives it a
// random velocity. The player's vertical velocity is added so presents carry
// the player's momentum.
func (s *DeliverySystem) launch(w *ecs.World, player *component.Body, throw bool) int {
	count := 0
	ecs.ForEach(w, component.PresentComponent, func(e ecs.Entity, present *component.Present) {
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok {
			return
		}

		body.X = player.CenterX() - body.W/2
		body.Y = player.Y + player.H/2 - body.H/2
		body.Asleep = false
		body.Ghost = false
		body.ClearContacts()

		if throw {
			body.VX = s.between(-s.Throw.SpreadX, s.Throw.SpreadX)
			body.VY = -s.between(s.Throw.LaunchMin, s.Throw.LaunchMax) + player.VY
			body.Bounce = s.between(s.Throw.BounceMin, s.Throw.BounceMax)
			body.Spin = s.between(-s.Throw.SpinMax, s.Throw.SpinMax)
		} else {
			body.VX = s.between(-s.Drop.SpreadX, s.Drop.SpreadX)
			body.VY = -s.between(s.Drop.LaunchMin, s.Drop.LaunchMax) + player.VY
			body.Bounce = s.Drop.Bounce
			body.Spin = 0
		}

		present.Launched = true
		present.Thrown = throw
		if appearance, ok := ecs.Get(w, e, component.AppearanceComponent); ok {
			appearance.Visible = true
		}
		count++
	})
	return count
}

func (s *DeliverySystem) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Rand.Float64()*(hi-lo)
}
