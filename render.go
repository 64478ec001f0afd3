package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/prefabs"
	"github.com/milk9111/oneroom/session"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	skyColor       = color.NRGBA{R: 0x1b, G: 0x24, B: 0x3a, A: 0xff}
	fallbackTile   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	fallbackEntity = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type renderer struct {
	pixel  *ebiten.Image
	face   ebtext.Face
	colors map[string]color.NRGBA
}

func newRenderer() *renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &renderer{
		pixel:  pixel,
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		colors: map[string]color.NRGBA{},
	}
}

// color parses and caches a hex color, falling back when it is missing or bad.
func (r *renderer) color(hex string, fallback color.NRGBA) color.NRGBA {
	if hex == "" {
		return fallback
	}
	if c, ok := r.colors[hex]; ok {
		return c
	}
	c, err := prefabs.ParseHexColor(hex)
	if err != nil {
		c = fallback
	}
	r.colors[hex] = c
	return c
}

// drawable is one thing to draw at a render layer.
type drawable struct {
	layer int
	order int
	draw  func(screen *ebiten.Image)
}

// DrawSession draws tile layers and entities interleaved by render layer.
func (r *renderer) DrawSession(screen *ebiten.Image, s *session.LevelSession) {
	screen.Fill(skyColor)

	var items []drawable
	tm := s.Tilemap
	for i := range tm.Layers {
		layer := tm.Layers[i]
		if layer.Hidden {
			continue
		}
		items = append(items, drawable{layer: layer.Draw, order: i, draw: func(screen *ebiten.Image) {
			for idx, tile := range layer.Tiles {
				if tile <= 0 {
					continue
				}
				def := tm.Tileset[tile]
				if def.Color == "" {
					continue
				}
				x := float64(idx%tm.Width) * tm.CellSize
				y := float64(idx/tm.Width) * tm.CellSize
				vector.FillRect(screen, float32(x), float32(y), float32(tm.CellSize), float32(tm.CellSize), r.color(def.Color, fallbackTile), false)
			}
		}})
	}

	w := s.World
	for _, e := range w.Query(component.AppearanceComponent.Kind(), component.RenderLayerComponent.Kind()) {
		appearance, _ := ecs.Get(w, e, component.AppearanceComponent)
		layer, _ := ecs.Get(w, e, component.RenderLayerComponent)
		if !appearance.Visible || appearance.Alpha <= 0 {
			continue
		}
		items = append(items, drawable{layer: layer.Index, order: len(tm.Layers) + int(uint32(e)), draw: func(screen *ebiten.Image) {
			r.drawEntity(screen, w, e, appearance)
		}})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].order < items[j].order
	})
	for _, item := range items {
		item.draw(screen)
	}
}

func (r *renderer) drawEntity(screen *ebiten.Image, w *ecs.World, e ecs.Entity, appearance *component.Appearance) {
	clr := r.color(appearance.Color, fallbackEntity)

	if body, ok := ecs.Get(w, e, component.BodyComponent); ok {
		r.drawRotatedRect(screen, body.X+body.W/2, body.Y+body.H/2, body.W, body.H, body.Angle, clr, appearance.Alpha)
		if facing, ok := ecs.Get(w, e, component.FacingComponent); ok {
			// A small visor shows which way the player faces.
			eyeX := body.X + body.W*0.6
			if facing.Left {
				eyeX = body.X + body.W*0.1
			}
			r.drawRotatedRect(screen, eyeX+body.W*0.15, body.Y+body.H*0.2, body.W*0.3, body.H*0.1, 0, colornames.Wheat, appearance.Alpha)
		}
		return
	}

	if trigger, ok := ecs.Get(w, e, component.TriggerComponent); ok {
		a := trigger.Area
		r.drawRotatedRect(screen, a.CenterX(), a.CenterY(), a.Width, a.Height, 0, clr, appearance.Alpha)
	}
}

func (r *renderer) drawRotatedRect(screen *ebiten.Image, cx, cy, w, h, angle float64, clr color.Color, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(r.pixel, op)
}

func (r *renderer) text(screen *ebiten.Image, msg string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, msg, r.face, op)
}

// DrawHUD draws the jolly meter and the current objective.
func (r *renderer) DrawHUD(screen *ebiten.Image, s *session.LevelSession) {
	const (
		barX, barY = 16, 16
		barW, barH = 200, 12
	)
	jolly := s.Jolly()
	if jolly != nil {
		vector.FillRect(screen, barX-2, barY-2, barW+4, barH+4, colornames.Black, false)
		fill := colornames.Limegreen
		if jolly.Value < 30 {
			fill = colornames.Crimson
		}
		vector.FillRect(screen, barX, barY, float32(barW*jolly.Fraction()), barH, fill, false)
		r.text(screen, fmt.Sprintf("jolly %d", jolly.Value), barX+barW+10, barY-1, colornames.White)
	}

	if objective := s.Objective(); objective != nil {
		r.text(screen, objectiveHint(objective.Stage), barX, barY+barH+8, colornames.White)
	}
}

func objectiveHint(stage component.ObjectiveStage) string {
	switch stage {
	case component.EnterHouse:
		return "Climb onto the roof and go down the chimney"
	case component.PlacePresents:
		return "Put the presents under the tree"
	case component.LeaveHouse:
		return "Go back up the chimney from the fireplace"
	}
	return "Delivered!"
}

// DrawMessage shows the latest script message near the bottom of the screen.
func (r *renderer) DrawMessage(screen *ebiten.Image, msg string) {
	w, _ := ebtext.Measure(msg, r.face, 0)
	x := (common.BaseWidth - w) / 2
	y := float64(common.BaseHeight - 72)
	vector.FillRect(screen, float32(x-8), float32(y-6), float32(w+16), 26, color.NRGBA{A: 180}, false)
	r.text(screen, msg, x, y, colornames.White)
}

// DrawMenu lists the levels with the selection highlighted.
func (r *renderer) DrawMenu(screen *ebiten.Image, c *session.Controller, selected int) {
	screen.Fill(skyColor)
	r.text(screen, "oneroom", 64, 64, colornames.White)
	for i := 0; i < c.LevelCount(); i++ {
		clr := colornames.Lightgray
		prefix := "  "
		if i == selected {
			clr = colornames.Gold
			prefix = "> "
		}
		r.text(screen, prefix+c.LevelName(i), 64, float64(112+i*24), clr)
	}
	r.text(screen, "up/down to choose, enter to start", 64, float64(128+c.LevelCount()*24), colornames.Gray)
}

// DrawDebug overlays simulation state and outlines of bodies and triggers.
func (r *renderer) DrawDebug(screen *ebiten.Image, s *session.LevelSession, frames int) {
	w := s.World
	ecs.ForEach(w, component.TriggerComponent, func(_ ecs.Entity, trigger *component.Trigger) {
		a := trigger.Area
		vector.StrokeRect(screen, float32(a.X), float32(a.Y), float32(a.Width), float32(a.Height), 1, color.RGBA{R: 255, G: 255, A: 200}, false)
	})
	ecs.ForEach(w, component.BodyComponent, func(_ ecs.Entity, body *component.Body) {
		if body.Asleep {
			return
		}
		clr := color.RGBA{R: 255, A: 200}
		if body.Ghost {
			clr = color.RGBA{B: 255, A: 200}
		}
		vector.StrokeRect(screen, float32(body.X), float32(body.Y), float32(body.W), float32(body.H), 1, clr, false)
	})

	state := s.State()
	objective := s.Objective()
	body := s.PlayerBody()
	lines := fmt.Sprintf(
		"Frames: %d    FPS: %.2f\nlevel %d %s  frame %d\nstate %s  ground %s\nobjective %s  paused %v\npos %.1f,%.1f  vel %.1f,%.1f",
		frames, ebiten.ActualFPS(),
		s.Index, s.Level.Name, state.Frame,
		s.PlayerState(), s.Grounded(),
		objective.Stage, s.Paused(),
		body.X, body.Y, body.VX, body.VY,
	)
	ebitenutil.DebugPrintAt(screen, lines, common.BaseWidth-300, 8)
}
