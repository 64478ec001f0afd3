package component

const JollyMax = 100

// Jolly is the decaying resource meter. Value stays inside [0, JollyMax];
// reaching zero sets Depleted for the rest of the session.
type Jolly struct {
	Value      int
	DecayEvery int
	Frames     int
	Depleted   bool
}

// Set stores v clamped to [0, JollyMax] and reports whether the meter is now depleted.
func (j *Jolly) Set(v int) bool {
	if v < 0 {
		v = 0
	}
	if v > JollyMax {
		v = JollyMax
	}
	j.Value = v
	if j.Value <= 0 {
		j.Depleted = true
	}
	return j.Depleted
}

func (j *Jolly) Add(delta int) bool {
	return j.Set(j.Value + delta)
}

// Tick applies one decay step.
func (j *Jolly) Tick() bool {
	return j.Set(j.Value - 1)
}

// Advance counts one frame and applies a decay step every DecayEvery frames.
func (j *Jolly) Advance() bool {
	if j.DecayEvery <= 0 {
		return j.Depleted
	}
	j.Frames++
	if j.Frames < j.DecayEvery {
		return j.Depleted
	}
	j.Frames = 0
	return j.Tick()
}

func (j *Jolly) Fraction() float64 {
	return float64(j.Value) / JollyMax
}

var JollyComponent = NewComponent[Jolly]()
