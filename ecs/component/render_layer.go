package component

// Draw order indices shared by the level tile layers and entities.
const (
	LayerBackground         = 0
	LayerBehindMiddleground = 10
	LayerMiddleground       = 20
	LayerProps              = 25
	LayerPlayer             = 30
	LayerForeground         = 40
)

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
