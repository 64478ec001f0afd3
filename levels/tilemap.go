package levels

import (
	"math"

	"github.com/milk9111/oneroom/common"
)

// TagChimneyTop marks the passable tile sitting on a chimney opening.
const TagChimneyTop = "chimney-top"

// Tile is one cell returned by a terrain query.
type Tile struct {
	Index int
	Tag   string
	Solid bool
	Area  common.Rect
	Layer string
}

// TileLayer is a decoded layer of tile indices, row-major.
type TileLayer struct {
	Name    string
	Physics bool
	Hidden  bool
	Draw    int
	Tiles   []int
}

// Tilemap answers terrain queries for a loaded level.
type Tilemap struct {
	Width    int
	Height   int
	CellSize float64
	Tileset  map[int]TileDef
	Layers   []TileLayer
}

// NewTilemap decodes the legend rows of a validated level.
func NewTilemap(lvl *Level) *Tilemap {
	tm := &Tilemap{
		CellSize: float64(lvl.TileSize),
		Tileset:  lvl.Tileset,
	}
	for _, def := range lvl.Layers {
		tm.Height = len(def.Rows)
		if tm.Height > 0 {
			tm.Width = len(def.Rows[0])
		}
		layer := TileLayer{
			Name:    def.Name,
			Physics: def.Physics,
			Hidden:  def.Hidden,
			Draw:    def.Draw,
			Tiles:   make([]int, 0, tm.Width*tm.Height),
		}
		for _, row := range def.Rows {
			for _, ch := range row {
				layer.Tiles = append(layer.Tiles, lvl.Legend[string(ch)])
			}
		}
		tm.Layers = append(tm.Layers, layer)
	}
	return tm
}

// Bounds is the level's extent in pixels.
func (tm *Tilemap) Bounds() common.Rect {
	return common.Rect{Width: float64(tm.Width) * tm.CellSize, Height: float64(tm.Height) * tm.CellSize}
}

func (tm *Tilemap) TileSize() (w, h float64) {
	return tm.CellSize, tm.CellSize
}

func (tm *Tilemap) cellArea(x, y int) common.Rect {
	return common.Rect{
		X:      float64(x) * tm.CellSize,
		Y:      float64(y) * tm.CellSize,
		Width:  tm.CellSize,
		Height: tm.CellSize,
	}
}

func (tm *Tilemap) tile(layer TileLayer, x, y int) Tile {
	idx := layer.Tiles[y*tm.Width+x]
	def := tm.Tileset[idx]
	return Tile{
		Index: idx,
		Tag:   def.Tag,
		Solid: idx > 0 && def.Solid,
		Area:  tm.cellArea(x, y),
		Layer: layer.Name,
	}
}

// TilesOverlapping returns every physics-layer cell that overlaps r, empty
// cells included. Cells outside the map are never returned.
func (tm *Tilemap) TilesOverlapping(r common.Rect) []Tile {
	if tm == nil || r.Empty() || tm.CellSize <= 0 {
		return nil
	}
	minX := int(math.Floor(r.X / tm.CellSize))
	minY := int(math.Floor(r.Y / tm.CellSize))
	maxX := int(math.Ceil((r.X+r.Width)/tm.CellSize)) - 1
	maxY := int(math.Ceil((r.Y+r.Height)/tm.CellSize)) - 1

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, tm.Width-1)
	maxY = min(maxY, tm.Height-1)
	if minX > maxX || minY > maxY {
		return nil
	}

	var out []Tile
	for _, layer := range tm.Layers {
		if !layer.Physics {
			continue
		}
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				out = append(out, tm.tile(layer, x, y))
			}
		}
	}
	return out
}

// SolidRuns merges horizontally adjacent solid cells of the physics layers
// into boxes, so bodies do not catch on seams between tiles.
func (tm *Tilemap) SolidRuns() []common.Rect {
	if tm == nil {
		return nil
	}
	solid := make([]bool, tm.Width*tm.Height)
	for _, layer := range tm.Layers {
		if !layer.Physics {
			continue
		}
		for i, idx := range layer.Tiles {
			if idx > 0 && tm.Tileset[idx].Solid {
				solid[i] = true
			}
		}
	}

	var runs []common.Rect
	for y := 0; y < tm.Height; y++ {
		start := -1
		for x := 0; x <= tm.Width; x++ {
			on := x < tm.Width && solid[y*tm.Width+x]
			if on && start < 0 {
				start = x
			}
			if !on && start >= 0 {
				area := tm.cellArea(start, y)
				area.Width = float64(x-start) * tm.CellSize
				runs = append(runs, area)
				start = -1
			}
		}
	}
	return runs
}

// TileAt returns the cell of the named layer at grid position x, y.
func (tm *Tilemap) TileAt(layerName string, x, y int) (Tile, bool) {
	if x < 0 || y < 0 || x >= tm.Width || y >= tm.Height {
		return Tile{}, false
	}
	for _, layer := range tm.Layers {
		if layer.Name == layerName {
			return tm.tile(layer, x, y), true
		}
	}
	return Tile{}, false
}
