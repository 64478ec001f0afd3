package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/oneroom/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional); skips the menu")
	seed := flag.Int64("seed", 1, "seed for present launches")
	mute := flag.Bool("mute", false, "start with sound off")
	watch := flag.Bool("watch", false, "reload prefabs/ from disk when files change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("oneroom")
	ebiten.SetTPS(common.TicksPerSecond)

	game, err := NewGame(GameConfig{
		Level: *levelName,
		Debug: *debug,
		Seed:  *seed,
		Mute:  *mute,
		Watch: *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
