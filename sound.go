package main

import (
	"bytes"
	"log"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/oneroom/audio"
)

const sampleRate = 44100

// ebitenCues plays the synthesized cues through ebiten's audio context.
type ebitenCues struct {
	ctx     *ebaudio.Context
	players map[audio.Cue]*ebaudio.Player
	loops   map[audio.Cue]bool
}

func newEbitenCues(rate int) *ebitenCues {
	c := &ebitenCues{
		ctx:     ebaudio.NewContext(rate),
		players: map[audio.Cue]*ebaudio.Player{},
		loops:   map[audio.Cue]bool{},
	}
	for _, cue := range audio.AllCues {
		tone, ok := audio.ToneFor(cue)
		if !ok {
			continue
		}
		pcm := audio.PCM16Stereo(audio.Render(tone, rate))
		if !tone.Loop {
			c.players[cue] = c.ctx.NewPlayerFromBytes(pcm)
			continue
		}
		stream := ebaudio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		player, err := c.ctx.NewPlayer(stream)
		if err != nil {
			log.Printf("sound: %s: %v", cue, err)
			continue
		}
		c.players[cue] = player
		c.loops[cue] = true
	}
	return c
}

// Play restarts a one-shot cue; a looping cue resumes where it was paused.
func (c *ebitenCues) Play(cue audio.Cue) {
	player := c.players[cue]
	if player == nil {
		return
	}
	if !c.loops[cue] {
		if err := player.Rewind(); err != nil {
			log.Printf("sound: rewind %s: %v", cue, err)
		}
	}
	player.Play()
}

func (c *ebitenCues) Pause(cue audio.Cue) {
	if player := c.players[cue]; player != nil {
		player.Pause()
	}
}

func (c *ebitenCues) Stop(cue audio.Cue) {
	player := c.players[cue]
	if player == nil {
		return
	}
	player.Pause()
	if err := player.Rewind(); err != nil {
		log.Printf("sound: rewind %s: %v", cue, err)
	}
}

func (c *ebitenCues) IsPlaying(cue audio.Cue) bool {
	player := c.players[cue]
	return player != nil && player.IsPlaying()
}
