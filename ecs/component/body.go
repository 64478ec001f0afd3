package component

import "github.com/milk9111/oneroom/common"

// Body is the authoritative physics state of a rectangular body. The
// integrator copies it into its solver before a step and back afterwards.
type Body struct {
	X, Y   float64 // top-left
	W, H   float64
	VX, VY float64

	Angle float64
	Spin  float64

	Mass     float64
	Bounce   float64
	Friction float64
	// Rotates lets the solver spin the body; players keep a fixed rotation.
	Rotates bool

	// Ghost bodies pass through terrain and ignore gravity.
	Ghost bool
	// Asleep bodies are kept out of the solver entirely.
	Asleep bool

	BlockedBelow bool
	BlockedAbove bool
	BlockedLeft  bool
	BlockedRight bool
}

func (b *Body) Rect() common.Rect {
	return common.Rect{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
}

func (b *Body) CenterX() float64 {
	return b.X + b.W/2
}

func (b *Body) Bottom() float64 {
	return b.Y + b.H
}

func (b *Body) ClearContacts() {
	b.BlockedBelow = false
	b.BlockedAbove = false
	b.BlockedLeft = false
	b.BlockedRight = false
}

var BodyComponent = NewComponent[Body]()
