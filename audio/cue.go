package audio

// Cue names a sound effect. Frontends decide how a cue is rendered.
type Cue string

const (
	CueFootstep      Cue = "footstep"
	CueJump          Cue = "jump"
	CueChimney       Cue = "chimney"
	CueDeliver       Cue = "deliver"
	CueLevelComplete Cue = "level_complete"
	CueDepleted      Cue = "depleted"
	CueMessage       Cue = "message"
)

// AllCues lists every cue a frontend should prepare.
var AllCues = []Cue{CueFootstep, CueJump, CueChimney, CueDeliver, CueLevelComplete, CueDepleted, CueMessage}

// Cues plays, pauses and stops named sounds. Pause keeps the playback
// position, Stop rewinds it.
type Cues interface {
	Play(cue Cue)
	Pause(cue Cue)
	Stop(cue Cue)
	IsPlaying(cue Cue) bool
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Play(Cue)           {}
func (Silent) Pause(Cue)          {}
func (Silent) Stop(Cue)           {}
func (Silent) IsPlaying(Cue) bool { return false }

// Recorder tracks cue state without producing sound.
type Recorder struct {
	playing map[Cue]bool
	Played  []Cue
}

func NewRecorder() *Recorder {
	return &Recorder{playing: make(map[Cue]bool)}
}

func (r *Recorder) Play(cue Cue) {
	r.Played = append(r.Played, cue)
	r.playing[cue] = true
}

func (r *Recorder) Pause(cue Cue) {
	r.playing[cue] = false
}

func (r *Recorder) Stop(cue Cue) {
	r.playing[cue] = false
}

func (r *Recorder) IsPlaying(cue Cue) bool {
	return r.playing[cue]
}

// Count reports how many times Play was called for cue.
func (r *Recorder) Count(cue Cue) int {
	n := 0
	for _, c := range r.Played {
		if c == cue {
			n++
		}
	}
	return n
}

type muted struct {
	Cues
}

func (muted) Play(Cue) {}

// Mute wraps c so nothing new starts playing. When muted is false c is
// returned unchanged.
func Mute(c Cues, mute bool) Cues {
	if c == nil {
		return Silent{}
	}
	if !mute {
		return c
	}
	return muted{Cues: c}
}
