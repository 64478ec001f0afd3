package component

const (
	EventLevelComplete     = "level_complete"
	EventMeterDepleted     = "meter_depleted"
	EventObjectiveChanged  = "objective_changed"
	EventChimneyEntered    = "chimney_entered"
	EventChimneyExited     = "chimney_exited"
	EventPresentsDelivered = "presents_delivered"
	EventLayerChanged      = "layer_changed"
	EventScriptMessage     = "script_message"
)

type ObjectiveChanged struct {
	From ObjectiveStage
	To   ObjectiveStage
}

type ChimneyChanged struct {
	Direction ChimneyDirection
}

type LayerChanged struct {
	From int
	To   int
}

type PresentsDelivered struct {
	Thrown bool
	Count  int
	Reward int
}

type LevelComplete struct {
	LevelIndex int
}
