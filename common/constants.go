package common

const (
	BaseWidth  = 960
	BaseHeight = 540

	// TicksPerSecond is the fixed simulation rate; velocities are in pixels per second.
	TicksPerSecond = 60
	TickSeconds    = 1.0 / TicksPerSecond
)
