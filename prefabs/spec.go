package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name         string  `yaml:"name"`
	RunSpeed     float64 `yaml:"run_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	ChimneySpeed float64 `yaml:"chimney_speed"`
	// ChimneyAlpha is the sprite opacity while inside a chimney.
	ChimneyAlpha float64         `yaml:"chimney_alpha"`
	Sprite       SpriteSpec      `yaml:"sprite"`
	Body         BodySpec        `yaml:"body"`
	Color        HexColor        `yaml:"color"`
	RenderLayer  RenderLayerSpec `yaml:"render_layer"`
}

// SpriteSpec sizes the drawn sprite; the collision footprint is the sprite
// size scaled by the footprint factors.
type SpriteSpec struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	FootprintScaleX float64 `yaml:"footprint_scale_x"`
	FootprintScaleY float64 `yaml:"footprint_scale_y"`
}

func (s SpriteSpec) Footprint() (w, h float64) {
	sx, sy := s.FootprintScaleX, s.FootprintScaleY
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	return s.Width * sx, s.Height * sy
}

type BodySpec struct {
	Mass     float64 `yaml:"mass"`
	Bounce   float64 `yaml:"bounce"`
	Friction float64 `yaml:"friction"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type PresentSpec struct {
	Name        string          `yaml:"name"`
	Count       int             `yaml:"count"`
	Size        float64         `yaml:"size"`
	Colors      []HexColor      `yaml:"colors"`
	Body        BodySpec        `yaml:"body"`
	Throw       ThrowSpec       `yaml:"throw"`
	Drop        DropSpec        `yaml:"drop"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

type ThrowSpec struct {
	SpreadX   float64 `yaml:"spread_x"`
	LaunchMin float64 `yaml:"launch_min"`
	LaunchMax float64 `yaml:"launch_max"`
	BounceMin float64 `yaml:"bounce_min"`
	BounceMax float64 `yaml:"bounce_max"`
	SpinMax   float64 `yaml:"spin_max"`
	Reward    int     `yaml:"reward"`
}

type DropSpec struct {
	SpreadX   float64 `yaml:"spread_x"`
	LaunchMin float64 `yaml:"launch_min"`
	LaunchMax float64 `yaml:"launch_max"`
	Bounce    float64 `yaml:"bounce"`
}

type JollySpec struct {
	Start      int `yaml:"start"`
	DecayEvery int `yaml:"decay_every"`
}

type WorldSpec struct {
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
}

// Tuning is every spec a level session needs, loaded together so a reload
// swaps them atomically.
type Tuning struct {
	Player  PlayerSpec
	Present PresentSpec
	Jolly   JollySpec
	World   WorldSpec
}

func LoadTuning() (*Tuning, error) {
	player, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	present, err := LoadSpec[PresentSpec]("present.yaml")
	if err != nil {
		return nil, err
	}
	jolly, err := LoadSpec[JollySpec]("jolly.yaml")
	if err != nil {
		return nil, err
	}
	world, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &Tuning{Player: player, Present: present, Jolly: jolly, World: world}, nil
}

// HexColor is a "#rrggbb" or "#rrggbbaa" string checked at decode time.
type HexColor string

func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	if _, err := ParseHexColor(value.Value); err != nil {
		return err
	}
	*c = HexColor(value.Value)
	return nil
}

func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// DecodeProps converts a loosely typed property map, such as the props of a
// level entity, into a typed struct through its yaml tags.
func DecodeProps[T any](raw map[string]any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type ScriptZoneProps struct {
	Event string   `yaml:"event"`
	Once  bool     `yaml:"once"`
	Color HexColor `yaml:"color"`
}

type TriggerProps struct {
	Color HexColor `yaml:"color"`
}
