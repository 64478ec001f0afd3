package component

import "github.com/milk9111/oneroom/common"

type GroundedType int

const (
	Airborne GroundedType = iota
	NormalGround
	ChimneySurface
)

func (g GroundedType) String() string {
	switch g {
	case NormalGround:
		return "normal_ground"
	case ChimneySurface:
		return "chimney_surface"
	default:
		return "airborne"
	}
}

// Grounded is the classifier's verdict for the current tick. Column is the
// chimney-top tile under the body when Type is ChimneySurface.
type Grounded struct {
	Type   GroundedType
	Column common.Rect
}

var GroundedComponent = NewComponent[Grounded]()
