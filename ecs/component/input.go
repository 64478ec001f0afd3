package component

// Input stores the held directional state for the current tick.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

var InputComponent = NewComponent[Input]()
