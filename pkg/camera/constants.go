package camera

// Camera defaults
const (
	// DefaultMaxSpeed is the target speed of a held movement key, in world
	// units per microsecond
	DefaultMaxSpeed = 0.005
	// DefaultFreeLookSensitivity scales mouse deltas during free look
	DefaultFreeLookSensitivity = 1.0

	// Projection defaults
	DefaultHorizontalFOV = 70.0 // degrees
	DefaultNear          = 1.0
	DefaultFar           = 10000.0
)

// Motion integration
const (
	// AccelFactor is the fraction of the gap to the target velocity closed
	// each tick
	AccelFactor = 0.001
	// AirResistance is applied once per tick regardless of the tick length
	AirResistance = 0.9
)

// Free look and ground drag
const (
	// FreeLookScale converts mouse pixels to degrees at sensitivity 1
	FreeLookScale = 0.1

	// DragMomentumDivisor sets how quickly drag speed grows with altitude
	DragMomentumDivisor = 300.0
	// GroundLookAhead offsets the ground sample on both horizontal axes
	GroundLookAhead = 5.0
	// GroundClearance is the minimum altitude kept above the sampled ground
	GroundClearance = 13.0
)
