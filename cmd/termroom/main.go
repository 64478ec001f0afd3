// Command termroom plays the levels in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/prefabs"
	"github.com/milk9111/oneroom/session"
)

type options struct {
	levelName string
	seed      int64
	mute      bool
	logPath   string
}

func main() {
	var opts options
	flag.StringVar(&opts.levelName, "level", "", "level name in levels/ (basename, .json optional); skips the menu")
	flag.Int64Var(&opts.seed, "seed", 1, "seed for present launches")
	flag.BoolVar(&opts.mute, "mute", false, "start with sound off")
	flag.StringVar(&opts.logPath, "log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if err := play(opts); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// play owns every resource so its deferred cleanup runs before main exits.
func play(opts options) error {
	log.SetOutput(io.Discard)
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}

	var cues audio.Cues = audio.Silent{}
	if !opts.mute {
		sound, err := newBeepCues()
		if err != nil {
			// Non-fatal, the game can run without sound
			log.Printf("audio: %v", err)
		} else {
			defer sound.Close()
			cues = sound
		}
	}

	controller, err := session.NewController(tuning, session.Options{Audio: cues, Seed: opts.seed})
	if err != nil {
		return err
	}

	game, err := NewGame(controller)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer game.cleanup()

	if opts.levelName != "" {
		if err := game.startByName(opts.levelName); err != nil {
			return err
		}
	}
	return game.run()
}
