package component

type ObjectiveStage int

const (
	EnterHouse ObjectiveStage = iota
	PlacePresents
	LeaveHouse
	Done
)

func (s ObjectiveStage) String() string {
	switch s {
	case EnterHouse:
		return "enter_house"
	case PlacePresents:
		return "place_presents"
	case LeaveHouse:
		return "leave_house"
	case Done:
		return "done"
	}
	return "unknown"
}

// Objective tracks level progress. Stage only moves forward.
type Objective struct {
	Stage     ObjectiveStage
	Entered   bool
	Delivered bool
	Left      bool
}

// Advance moves from the from stage to the next one. It refuses any other
// transition, so the sequence cannot skip or regress.
func (o *Objective) Advance(from ObjectiveStage) bool {
	if o.Stage != from || o.Stage == Done {
		return false
	}
	o.Stage++
	switch o.Stage {
	case PlacePresents:
		o.Entered = true
	case LeaveHouse:
		o.Delivered = true
	case Done:
		o.Left = true
	}
	return true
}

var ObjectiveComponent = NewComponent[Objective]()
