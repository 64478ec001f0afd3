package component

// Appearance carries the presentation hints a renderer needs.
type Appearance struct {
	Alpha   float64
	Visible bool
	Color   string
}

var AppearanceComponent = NewComponent[Appearance]()
