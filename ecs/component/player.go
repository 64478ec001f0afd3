package component

// Player holds locomotion tuning for the controllable character.
type Player struct {
	RunSpeed     float64
	JumpSpeed    float64
	ChimneySpeed float64
	// ChimneyAlpha is the sprite opacity while inside a chimney.
	ChimneyAlpha float64
	SpriteW      float64
	SpriteH      float64
}

var PlayerComponent = NewComponent[Player]()
