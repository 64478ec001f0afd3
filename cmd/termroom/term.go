package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/prefabs"
	"github.com/milk9111/oneroom/session"
)

const (
	// Terminals repeat keys but never report releases, so a press counts as
	// held for this many ticks.
	holdTicks = 18
	// cellsPerTile widens each tile so the map keeps roughly square tiles.
	cellsPerTile = 2
	hudRows      = 3
	messageTicks = 3 * common.TicksPerSecond
)

type direction int

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
	dirCount
)

type Game struct {
	screen     tcell.Screen
	controller *session.Controller

	held      [dirCount]int
	menuIndex int

	message      string
	messageTimer int
	styles       map[string]tcell.Style
}

func NewGame(controller *session.Controller) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newGameOnScreen(screen, controller), nil
}

func newGameOnScreen(screen tcell.Screen, controller *session.Controller) *Game {
	screen.HideCursor()
	return &Game{
		screen:     screen,
		controller: controller,
		styles:     map[string]tcell.Style{},
	}
}

func (g *Game) cleanup() {
	if g.screen != nil {
		g.screen.Fini()
		g.screen = nil
	}
}

func (g *Game) startByName(name string) error {
	name = strings.TrimSuffix(filepath.Base(name), ".json")
	for i := 0; i < g.controller.LevelCount(); i++ {
		if g.controller.LevelName(i) == name {
			return g.controller.Start(i)
		}
	}
	return fmt.Errorf("unknown level %q", name)
}

func (g *Game) run() error {
	ticker := time.NewTicker(time.Second / common.TicksPerSecond)
	defer ticker.Stop()

	// cleanup clears g.screen on the main goroutine.
	screen := g.screen
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return nil
			}
		case <-ticker.C:
			if err := g.tick(); err != nil {
				return err
			}
			g.draw()
		}
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			if g.controller.Session() != nil {
				g.controller.ReturnToMenu()
				return true
			}
			return false
		}

		if g.controller.Session() == nil {
			g.handleMenuKey(ev)
			return true
		}

		switch ev.Key() {
		case tcell.KeyLeft:
			g.held[dirLeft] = holdTicks
		case tcell.KeyRight:
			g.held[dirRight] = holdTicks
		case tcell.KeyUp:
			g.held[dirUp] = holdTicks
		case tcell.KeyDown:
			g.held[dirDown] = holdTicks
		case tcell.KeyEnter:
			g.completeAction(true)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'a':
				g.held[dirLeft] = holdTicks
			case 'd':
				g.held[dirRight] = holdTicks
			case 'w', ' ':
				g.held[dirUp] = holdTicks
			case 's':
				g.held[dirDown] = holdTicks
			case 'r':
				g.controller.Restart()
			case 'n':
				g.completeAction(true)
			case 'q':
				return false
			}
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) handleMenuKey(ev *tcell.EventKey) {
	count := g.controller.LevelCount()
	switch {
	case ev.Key() == tcell.KeyUp || (ev.Key() == tcell.KeyRune && ev.Rune() == 'w'):
		g.menuIndex = (g.menuIndex + count - 1) % count
	case ev.Key() == tcell.KeyDown || (ev.Key() == tcell.KeyRune && ev.Rune() == 's'):
		g.menuIndex = (g.menuIndex + 1) % count
	case ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' '):
		_ = g.controller.Start(g.menuIndex)
	}
}

// completeAction moves on from a finished level.
func (g *Game) completeAction(next bool) {
	s := g.controller.Session()
	if s == nil || !s.Paused() {
		return
	}
	if next && s.Index < g.controller.LevelCount()-1 {
		g.controller.Advance()
		return
	}
	g.controller.ReturnToMenu()
}

func (g *Game) input() component.Input {
	in := component.Input{
		Left:  g.held[dirLeft] > 0,
		Right: g.held[dirRight] > 0,
		Up:    g.held[dirUp] > 0,
		Down:  g.held[dirDown] > 0,
	}
	for i := range g.held {
		if g.held[i] > 0 {
			g.held[i]--
		}
	}
	return in
}

func (g *Game) tick() error {
	if g.messageTimer > 0 {
		g.messageTimer--
	}
	events, err := g.controller.Tick(g.input())
	if err != nil {
		return err
	}
	for _, evt := range events {
		switch evt.Type {
		case component.EventScriptMessage:
			if msg, ok := evt.Data.(string); ok {
				g.message = msg
				g.messageTimer = messageTicks
			}
		case component.EventMeterDepleted:
			g.message = "Out of holiday cheer! Starting over."
			g.messageTimer = messageTicks
		case component.EventLevelComplete:
			g.message = "Level complete! Enter for the next house, Esc for the menu."
			g.messageTimer = 1 << 30
		}
	}
	return nil
}

// style returns a background style for a hex color.
func (g *Game) style(hex string) tcell.Style {
	if st, ok := g.styles[hex]; ok {
		return st
	}
	st := tcell.StyleDefault
	if c, err := prefabs.ParseHexColor(hex); err == nil {
		st = st.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	g.styles[hex] = st
	return st
}

func (g *Game) draw() {
	g.screen.Clear()
	s := g.controller.Session()
	if s == nil {
		g.drawMenu()
		g.screen.Show()
		return
	}

	g.drawTiles(s)
	g.drawEntities(s)
	g.drawHUD(s)
	g.screen.Show()
}

func (g *Game) drawMenu() {
	g.drawText(2, 1, tcell.StyleDefault.Bold(true), "oneroom")
	for i := 0; i < g.controller.LevelCount(); i++ {
		st := tcell.StyleDefault
		prefix := "  "
		if i == g.menuIndex {
			st = st.Foreground(tcell.ColorGold)
			prefix = "> "
		}
		g.drawText(2, 3+i, st, prefix+g.controller.LevelName(i))
	}
	g.drawText(2, 4+g.controller.LevelCount(), tcell.StyleDefault.Dim(true), "up/down to choose, enter to start, esc to quit")
}

func (g *Game) drawTiles(s *session.LevelSession) {
	tm := s.Tilemap
	for _, layer := range tm.Layers {
		if layer.Hidden {
			continue
		}
		for idx, tile := range layer.Tiles {
			if tile <= 0 {
				continue
			}
			def := tm.Tileset[tile]
			if def.Color == "" {
				continue
			}
			x, y := idx%tm.Width, idx/tm.Width
			for i := 0; i < cellsPerTile; i++ {
				g.screen.SetContent(x*cellsPerTile+i, y+hudRows, ' ', nil, g.style(def.Color))
			}
		}
	}
}

// cell maps a world point to a screen cell.
func (g *Game) cell(s *session.LevelSession, x, y float64) (int, int) {
	size := s.Tilemap.CellSize
	return int(x / size * cellsPerTile), int(y/size) + hudRows
}

func (g *Game) drawEntities(s *session.LevelSession) {
	w := s.World

	ecs.ForEach(w, component.PresentComponent, func(e ecs.Entity, present *component.Present) {
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || !present.Launched {
			return
		}
		cx, cy := g.cell(s, body.CenterX(), body.Y+body.H/2)
		st := tcell.StyleDefault.Foreground(tcell.ColorRed)
		if appearance, ok := ecs.Get(w, e, component.AppearanceComponent); ok {
			if c, err := prefabs.ParseHexColor(appearance.Color); err == nil {
				st = st.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			}
		}
		g.screen.SetContent(cx, cy, '■', nil, st)
	})

	body := s.PlayerBody()
	if body == nil {
		return
	}
	glyph := '@'
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if chimney, ok := ecs.Get(w, s.Entities.Player, component.ChimneyComponent); ok && chimney.Active {
		glyph = '░'
		st = st.Dim(true)
	}
	cx, top := g.cell(s, body.CenterX(), body.Y)
	_, bottom := g.cell(s, body.CenterX(), body.Bottom()-1)
	for y := top; y <= bottom; y++ {
		g.screen.SetContent(cx, y, glyph, nil, st)
	}
}

func (g *Game) drawHUD(s *session.LevelSession) {
	if jolly := s.Jolly(); jolly != nil {
		const width = 20
		filled := int(jolly.Fraction() * width)
		bar := strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
		st := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		if jolly.Value < 30 {
			st = st.Foreground(tcell.ColorRed)
		}
		g.drawText(0, 0, st, fmt.Sprintf("jolly [%s] %3d", bar, jolly.Value))
	}
	if objective := s.Objective(); objective != nil {
		g.drawText(36, 0, tcell.StyleDefault, fmt.Sprintf("%s: %s", s.Level.Name, objective.Stage))
	}
	if g.messageTimer > 0 {
		g.drawText(0, 1, tcell.StyleDefault.Foreground(tcell.ColorYellow), g.message)
	}
}

func (g *Game) drawText(x, y int, st tcell.Style, text string) {
	for _, r := range text {
		g.screen.SetContent(x, y, r, nil, st)
		x++
	}
}
