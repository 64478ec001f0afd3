package audio

import (
	"encoding/binary"
	"math"
	"math/rand"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Note is one segment of a cue. Freq slides linearly to SlideTo when set.
type Note struct {
	Freq    float64
	SlideTo float64
	Seconds float64
	Wave    Wave
	Volume  float64
}

// Tone describes how a cue sounds.
type Tone struct {
	Notes []Note
	Loop  bool
	// Attack and Release shape each note, in seconds.
	Attack  float64
	Release float64
}

var tones = map[Cue]Tone{
	CueFootstep: {
		Notes: []Note{
			{Freq: 90, Seconds: 0.06, Wave: WaveNoise, Volume: 0.25},
			{Seconds: 0.14},
			{Freq: 70, Seconds: 0.06, Wave: WaveNoise, Volume: 0.2},
			{Seconds: 0.14},
		},
		Loop:    true,
		Attack:  0.005,
		Release: 0.04,
	},
	CueJump: {
		Notes:   []Note{{Freq: 220, SlideTo: 660, Seconds: 0.15, Wave: WaveSquare, Volume: 0.2}},
		Attack:  0.005,
		Release: 0.05,
	},
	CueChimney: {
		Notes:   []Note{{Freq: 520, SlideTo: 180, Seconds: 0.35, Wave: WaveSine, Volume: 0.3}},
		Attack:  0.01,
		Release: 0.1,
	},
	CueDeliver: {
		Notes: []Note{
			{Freq: 1318.5, Seconds: 0.12, Wave: WaveSine, Volume: 0.35},
			{Freq: 1568.0, Seconds: 0.12, Wave: WaveSine, Volume: 0.35},
			{Freq: 2093.0, Seconds: 0.3, Wave: WaveSine, Volume: 0.35},
		},
		Attack:  0.003,
		Release: 0.08,
	},
	CueLevelComplete: {
		Notes: []Note{
			{Freq: 523.3, Seconds: 0.15, Wave: WaveSquare, Volume: 0.18},
			{Freq: 659.3, Seconds: 0.15, Wave: WaveSquare, Volume: 0.18},
			{Freq: 784.0, Seconds: 0.15, Wave: WaveSquare, Volume: 0.18},
			{Freq: 1046.5, Seconds: 0.4, Wave: WaveSquare, Volume: 0.18},
		},
		Attack:  0.005,
		Release: 0.06,
	},
	CueDepleted: {
		Notes: []Note{
			{Freq: 293.7, Seconds: 0.25, Wave: WaveSaw, Volume: 0.2},
			{Freq: 220.0, SlideTo: 180, Seconds: 0.5, Wave: WaveSaw, Volume: 0.2},
		},
		Attack:  0.01,
		Release: 0.15,
	},
	CueMessage: {
		Notes:   []Note{{Freq: 880, Seconds: 0.08, Wave: WaveSine, Volume: 0.2}},
		Attack:  0.003,
		Release: 0.04,
	},
}

// ToneFor returns the tone of a cue.
func ToneFor(cue Cue) (Tone, bool) {
	t, ok := tones[cue]
	return t, ok
}

// Render synthesizes a tone as mono samples in [-1, 1]. Noise is seeded so the
// same tone always renders the same samples.
func Render(t Tone, sampleRate int) []float64 {
	if sampleRate <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(int64(len(t.Notes))*7919 + 1))
	var out []float64
	for _, note := range t.Notes {
		n := int(note.Seconds * float64(sampleRate))
		attack := int(t.Attack * float64(sampleRate))
		release := int(t.Release * float64(sampleRate))
		phase := 0.0
		for i := 0; i < n; i++ {
			if note.Freq <= 0 || note.Volume <= 0 {
				out = append(out, 0)
				continue
			}
			freq := note.Freq
			if note.SlideTo > 0 {
				freq += (note.SlideTo - note.Freq) * float64(i) / float64(n)
			}

			var v float64
			switch note.Wave {
			case WaveSine:
				v = math.Sin(2 * math.Pi * phase)
			case WaveSquare:
				v = 1
				if phase >= 0.5 {
					v = -1
				}
			case WaveSaw:
				v = 2 * (phase - 0.5)
			case WaveNoise:
				v = rng.Float64()*2 - 1
			}
			phase += freq / float64(sampleRate)
			phase -= math.Floor(phase)

			out = append(out, v*note.Volume*envelope(i, n, attack, release))
		}
	}
	return out
}

func envelope(i, n, attack, release int) float64 {
	vol := 1.0
	if attack > 0 && i < attack {
		vol = float64(i) / float64(attack)
	}
	if release > 0 && i >= n-release {
		vol = math.Min(vol, float64(n-i)/float64(release))
	}
	return vol
}

// PCM16Stereo encodes mono samples as interleaved little-endian 16-bit stereo.
func PCM16Stereo(samples []float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], v)
		binary.LittleEndian.PutUint16(out[i*4+2:], v)
	}
	return out
}
