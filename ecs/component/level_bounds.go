package component

import "github.com/milk9111/oneroom/common"

// LevelBounds is the walled-in area of the loaded level. The integrator
// builds its outer walls from it.
type LevelBounds struct {
	Area common.Rect
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
