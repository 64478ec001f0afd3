package system

import (
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/levels"
)

// Terrain answers tile queries against the level geometry.
type Terrain interface {
	TilesOverlapping(r common.Rect) []levels.Tile
	TileSize() (w, h float64)
}

// Integrator moves bodies and resolves their contacts with terrain.
type Integrator interface {
	Step(w *ecs.World)
	// Collide reports whether e touched terrain in the last step and runs
	// onCollide when it did.
	Collide(w *ecs.World, e ecs.Entity, onCollide func()) bool
}

// Classify decides what the body is standing on. The band tested is one tile
// tall and sits directly under the body's footprint. A passable chimney-top
// tile anywhere in the band wins over ordinary ground.
func Classify(body *component.Body, chimneyActive bool, terrain Terrain) (component.GroundedType, common.Rect) {
	if body == nil || terrain == nil {
		return component.Airborne, common.Rect{}
	}
	if !body.BlockedBelow && !chimneyActive {
		return component.Airborne, common.Rect{}
	}

	_, tileH := terrain.TileSize()
	band := common.Rect{
		X:      body.CenterX() - body.W/2,
		Y:      body.Bottom(),
		Width:  body.W,
		Height: tileH,
	}

	result := component.Airborne
	for _, tile := range terrain.TilesOverlapping(band) {
		if tile.Index <= 0 {
			continue
		}
		if !tile.Solid && tile.Tag == levels.TagChimneyTop {
			return component.ChimneySurface, tile.Area
		}
		result = component.NormalGround
	}
	return result, common.Rect{}
}

func classifyInto(grounded *component.Grounded, body *component.Body, chimney *component.Chimney, terrain Terrain) {
	if grounded == nil {
		return
	}
	active := chimney != nil && chimney.Active
	grounded.Type, grounded.Column = Classify(body, active, terrain)
}
