package component

// Present is a pooled prop that stays stowed until delivery launches it.
type Present struct {
	Slot     int
	Launched bool
	Thrown   bool
}

var PresentComponent = NewComponent[Present]()
