package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/prefabs"
	"github.com/milk9111/oneroom/session"
)

const messageFrames = 3 * common.TicksPerSecond

type GameConfig struct {
	Level string
	Debug bool
	Seed  int64
	Mute  bool
	Watch bool
}

type Game struct {
	frames int
	debug  bool

	controller *session.Controller
	cues       *ebitenCues
	watcher    *prefabs.Watcher
	renderer   *renderer

	menuIndex  int
	paused     bool
	pauseUI    *ebitenui.UI
	completeUI *ebitenui.UI

	message      string
	messageTimer int
}

func NewGame(cfg GameConfig) (*Game, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}

	g := &Game{
		debug:    cfg.Debug,
		renderer: newRenderer(),
		cues:     newEbitenCues(sampleRate),
	}

	g.controller, err = session.NewController(tuning, session.Options{
		Audio: g.cues,
		Muted: cfg.Mute,
		Seed:  cfg.Seed,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Level != "" {
		index := g.levelIndex(cfg.Level)
		if index < 0 {
			return nil, fmt.Errorf("unknown level %q", cfg.Level)
		}
		if err := g.controller.Start(index); err != nil {
			return nil, err
		}
	}

	if cfg.Watch {
		g.watcher, err = prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("watch: %v", err)
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) levelIndex(name string) int {
	name = strings.TrimSuffix(filepath.Base(name), ".json")
	for i := 0; i < g.controller.LevelCount(); i++ {
		if g.controller.LevelName(i) == name {
			return i
		}
	}
	return -1
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if g.messageTimer > 0 {
		g.messageTimer--
	}

	if pressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	s := g.controller.Session()
	switch {
	case s == nil:
		g.updateMenu()
	case g.completeUI != nil:
		g.completeUI.Update()
	case g.paused:
		g.pauseUI.Update()
		if pressed(ebiten.KeyEscape, ebiten.KeyP) {
			g.setPaused(false)
		}
	default:
		if pressed(ebiten.KeyEscape, ebiten.KeyP) {
			g.setPaused(true)
		}
		if pressed(ebiten.KeyR) {
			g.controller.Restart()
		}
	}

	events, err := g.controller.Tick(readInput())
	if err != nil {
		return err
	}
	g.handleEvents(events)

	if g.controller.Session() == nil || !g.controller.Session().Paused() {
		g.completeUI = nil
	}
	return nil
}

// setPaused shows or hides the pause menu. The session keeps ticking behind
// it so props settle.
func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.controller.SetPaused(paused)
}

func (g *Game) updateMenu() {
	count := g.controller.LevelCount()
	if pressed(ebiten.KeyArrowUp, ebiten.KeyW) {
		g.menuIndex = (g.menuIndex + count - 1) % count
	}
	if pressed(ebiten.KeyArrowDown, ebiten.KeyS) {
		g.menuIndex = (g.menuIndex + 1) % count
	}
	if pressed(ebiten.KeyEnter, ebiten.KeySpace) {
		if err := g.controller.Start(g.menuIndex); err != nil {
			log.Printf("menu: %v", err)
		}
	}
}

func (g *Game) handleEvents(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Type {
		case component.EventScriptMessage:
			if msg, ok := evt.Data.(string); ok {
				g.message = msg
				g.messageTimer = messageFrames
			}
		case component.EventMeterDepleted:
			g.message = "Out of holiday cheer! Starting over."
			g.messageTimer = messageFrames
		case component.EventLevelComplete:
			g.completeUI = NewLevelCompleteUI(g)
		}
	}
}

// pollWatcher applies prefab edits. New tuning takes effect on the next
// session, so the current level is restarted.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if !change.Script {
				tuning, err := prefabs.LoadTuning()
				if err != nil {
					log.Printf("reload %s: %v", change.Path, err)
					continue
				}
				g.controller.SetTuning(tuning)
			}
			log.Printf("reloaded %s", change.Path)
			g.controller.Restart()
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.controller.Session()
	if s == nil {
		g.renderer.DrawMenu(screen, g.controller, g.menuIndex)
		return
	}

	g.renderer.DrawSession(screen, s)
	g.renderer.DrawHUD(screen, s)
	if g.messageTimer > 0 {
		g.renderer.DrawMessage(screen, g.message)
	}
	if g.debug {
		g.renderer.DrawDebug(screen, s, g.frames)
	}

	switch {
	case g.completeUI != nil:
		g.completeUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
