package component

const (
	AnimationIdle = "idle"
	AnimationRun  = "run"
)

type Animation struct {
	Current    string
	Frame      int
	FrameTimer int
}

// Play switches clips, restarting only when the clip changes.
func (a *Animation) Play(name string) {
	if a.Current == name {
		return
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
}

var AnimationComponent = NewComponent[Animation]()
