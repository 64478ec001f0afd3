package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/oneroom/audio"
)

const sampleRate = beep.SampleRate(44100)

type voice struct {
	seeker beep.StreamSeeker
	ctrl   *beep.Ctrl
}

// beepCues mixes the synthesized cues onto the system speaker.
type beepCues struct {
	mixer   *beep.Mixer
	buffers map[audio.Cue]*beep.Buffer
	loops   map[audio.Cue]bool
	voices  map[audio.Cue]*voice
}

func newBeepCues() (*beepCues, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, err
	}

	c := &beepCues{
		mixer:   &beep.Mixer{},
		buffers: map[audio.Cue]*beep.Buffer{},
		loops:   map[audio.Cue]bool{},
		voices:  map[audio.Cue]*voice{},
	}
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	for _, cue := range audio.AllCues {
		tone, ok := audio.ToneFor(cue)
		if !ok {
			continue
		}
		buffer := beep.NewBuffer(format)
		buffer.Append(samplesStreamer(audio.Render(tone, int(sampleRate))))
		c.buffers[cue] = buffer
		c.loops[cue] = tone.Loop
	}

	speaker.Play(c.mixer)
	return c, nil
}

// samplesStreamer streams mono samples to both channels.
func samplesStreamer(data []float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(data) {
			return 0, false
		}
		n := 0
		for n < len(samples) && pos < len(data) {
			samples[n][0] = data[pos]
			samples[n][1] = data[pos]
			n++
			pos++
		}
		return n, true
	})
}

// Play starts a one-shot cue from the beginning. A looping cue resumes.
func (c *beepCues) Play(cue audio.Cue) {
	buffer := c.buffers[cue]
	if buffer == nil {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if v := c.voices[cue]; v != nil {
		if c.loops[cue] && v.ctrl.Streamer != nil {
			v.ctrl.Paused = false
			return
		}
		v.ctrl.Streamer = nil
	}

	seeker := buffer.Streamer(0, buffer.Len())
	var s beep.Streamer = seeker
	if c.loops[cue] {
		s = beep.Loop(-1, seeker)
	}
	v := &voice{seeker: seeker, ctrl: &beep.Ctrl{Streamer: s}}
	c.voices[cue] = v
	c.mixer.Add(v.ctrl)
}

func (c *beepCues) Pause(cue audio.Cue) {
	speaker.Lock()
	defer speaker.Unlock()
	if v := c.voices[cue]; v != nil {
		v.ctrl.Paused = true
	}
}

func (c *beepCues) Stop(cue audio.Cue) {
	speaker.Lock()
	defer speaker.Unlock()
	if v := c.voices[cue]; v != nil {
		v.ctrl.Streamer = nil
		delete(c.voices, cue)
	}
}

func (c *beepCues) IsPlaying(cue audio.Cue) bool {
	speaker.Lock()
	defer speaker.Unlock()
	v := c.voices[cue]
	if v == nil || v.ctrl.Paused || v.ctrl.Streamer == nil {
		return false
	}
	return c.loops[cue] || v.seeker.Position() < v.seeker.Len()
}

func (c *beepCues) Close() {
	speaker.Lock()
	for cue, v := range c.voices {
		v.ctrl.Streamer = nil
		delete(c.voices, cue)
	}
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
