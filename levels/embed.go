package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/oneroom/common"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the on-disk description of one playable level. Layers are drawn as
// rows of legend characters so levels stay editable by hand.
type Level struct {
	Name     string          `json:"name"`
	TileSize int             `json:"tile_size"`
	Tileset  map[int]TileDef `json:"tileset"`
	Legend   map[string]int  `json:"legend"`
	Layers   []LayerDef      `json:"layers"`
	Spawn    Point           `json:"spawn"`
	Entities []Entity        `json:"entities,omitempty"`
	Script   string          `json:"script,omitempty"`
	Jolly    *JollyDef       `json:"jolly,omitempty"`
}

type TileDef struct {
	Name  string `json:"name"`
	Solid bool   `json:"solid"`
	Tag   string `json:"tag,omitempty"`
	Color string `json:"color,omitempty"`
}

type LayerDef struct {
	Name string `json:"name"`
	// Physics layers are visible to terrain queries and collision.
	Physics bool     `json:"physics"`
	Hidden  bool     `json:"hidden,omitempty"`
	Draw    int      `json:"draw"`
	Rows    []string `json:"rows"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	W     float64        `json:"w"`
	H     float64        `json:"h"`
	Props map[string]any `json:"props,omitempty"`
}

// JollyDef overrides the prefab meter settings for a level.
type JollyDef struct {
	Start      int `json:"start"`
	DecayEvery int `json:"decay_every"`
}

func (e Entity) Area() common.Rect {
	return common.Rect{X: e.X, Y: e.Y, Width: e.W, Height: e.H}
}

// EmptyTile is the legend character for an empty cell.
const EmptyTile = "."

// Names lists the embedded levels in play order, without extensions.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// LoadLevelFromFS reads and validates an embedded level by name.
func LoadLevelFromFS(name string) (*Level, error) {
	if path.Ext(name) == "" {
		name += ".json"
	}
	data, err := LevelsFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return lvl, nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&lvl); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func validate(lvl *Level) error {
	if lvl.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %d", lvl.TileSize)
	}
	if len(lvl.Layers) == 0 {
		return fmt.Errorf("no layers")
	}

	height := len(lvl.Layers[0].Rows)
	if height == 0 {
		return fmt.Errorf("layer %q has no rows", lvl.Layers[0].Name)
	}
	width := len(lvl.Layers[0].Rows[0])

	for _, layer := range lvl.Layers {
		if len(layer.Rows) != height {
			return fmt.Errorf("layer %q has %d rows, want %d", layer.Name, len(layer.Rows), height)
		}
		for y, row := range layer.Rows {
			if len(row) != width {
				return fmt.Errorf("layer %q row %d is %d wide, want %d", layer.Name, y, len(row), width)
			}
			for x, ch := range row {
				key := string(ch)
				if key == EmptyTile {
					continue
				}
				index, ok := lvl.Legend[key]
				if !ok {
					return fmt.Errorf("layer %q (%d,%d): %q is not in the legend", layer.Name, x, y, key)
				}
				if _, ok := lvl.Tileset[index]; !ok {
					return fmt.Errorf("layer %q (%d,%d): tile %d is not in the tileset", layer.Name, x, y, index)
				}
			}
		}
	}
	return nil
}
