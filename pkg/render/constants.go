package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Clear colors
var (
	SkyColor   = mgl32.Vec4{0.55, 0.7, 0.9, 1.0}
	WaterColor = mgl32.Vec4{0.1, 0.3, 0.45, 1.0}
)

const (
	// ReflectionScale is the reflection target size relative to the window
	ReflectionScale = 0.5

	// ReflectionTextureUnit is where the water shader samples the reflection
	ReflectionTextureUnit = 0

	// WaterReflectivity blends the reflection over WaterColor
	WaterReflectivity = 0.6

	// StatsInterval is how often frame timing is logged, in seconds
	StatsInterval = 5.0
)

// SunDirection points towards the light
var SunDirection = mgl32.Vec3{0.4, 1.0, 0.3}

// noClip keeps every vertex when the clip plane is enabled
var noClip = mgl32.Vec4{0, 0, 0, 1}
