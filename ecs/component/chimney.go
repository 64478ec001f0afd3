package component

type ChimneyDirection int

const (
	ChimneyUp ChimneyDirection = iota + 1
	ChimneyDown
)

func (d ChimneyDirection) String() string {
	switch d {
	case ChimneyUp:
		return "up"
	case ChimneyDown:
		return "down"
	}
	return "none"
}

// Chimney is active while the player traverses a chimney. OriginalLayer is the
// render layer to restore on exit.
type Chimney struct {
	Active        bool
	Direction     ChimneyDirection
	OriginalLayer int
}

var ChimneyComponent = NewComponent[Chimney]()
