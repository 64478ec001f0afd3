package component

// Session is the per-level singleton flags checked by the scheduler gates.
type Session struct {
	LevelIndex     int
	Frame          int
	Paused         bool
	RestartPending bool
}

var SessionComponent = NewComponent[Session]()
