package component

import "github.com/milk9111/oneroom/common"

type TriggerKind int

const (
	TriggerFireplace TriggerKind = iota + 1
	TriggerDelivery
	TriggerScript
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerFireplace:
		return "fireplace"
	case TriggerDelivery:
		return "delivery_target"
	case TriggerScript:
		return "script_zone"
	}
	return "unknown"
}

// Trigger is a static volume tested for overlap against the player.
type Trigger struct {
	Kind TriggerKind
	Area common.Rect
}

var TriggerComponent = NewComponent[Trigger]()

// ScriptZone names the script event fired when the player walks into a trigger.
type ScriptZone struct {
	Event  string
	Once   bool
	Fired  bool
	Inside bool
}

var ScriptZoneComponent = NewComponent[ScriptZone]()
