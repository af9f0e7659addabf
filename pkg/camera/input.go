package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-landcam/pkg/input"
)

// keyAxis is the camera-local direction a bound key contributes while held
var keyAxis = map[input.Key]mgl32.Vec3{
	input.KeyW:           {0, 0, 1},
	input.KeyS:           {0, 0, -1},
	input.KeyA:           {-1, 0, 0},
	input.KeyD:           {1, 0, 0},
	input.KeySpace:       {0, 1, 0},
	input.KeyLeftControl: {0, -1, 0},
}

// HandleEvent applies one input event. Call it for every event of a frame
// before Update.
func (c *Camera) HandleEvent(e input.Event) {
	switch e := e.(type) {
	case input.KeyEvent:
		c.handleKey(e)
	case input.MouseMotionEvent:
		c.handleMouseMotion(e)
	}
}

// handleKey accumulates movement only on real transitions: auto-repeats and
// presses of an already held key are ignored, as are releases of a key that
// was never seen pressed.
func (c *Camera) handleKey(e input.KeyEvent) {
	if e.Repeat {
		return
	}

	axis, ok := keyAxis[e.Key]
	if !ok {
		return
	}

	if c.held[e.Key] == e.Down {
		return
	}
	c.held[e.Key] = e.Down

	if e.Down {
		c.desiredVelocity = c.desiredVelocity.Add(axis)
	} else {
		c.desiredVelocity = c.desiredVelocity.Sub(axis)
	}
}

// ReleaseKeys drops every held movement key, e.g. when the window loses focus
// and the matching key-up events will never arrive.
func (c *Camera) ReleaseKeys() {
	clear(c.held)
	c.desiredVelocity = mgl32.Vec3{}
}

func (c *Camera) handleMouseMotion(e input.MouseMotionEvent) {
	switch {
	case e.Buttons.Has(input.ButtonMiddle):
		c.freeLook(e.XRel, e.YRel)
	case e.Buttons.Has(input.ButtonLeft):
		c.dragGround(e.XRel, e.YRel)
	}
}

// freeLook turns the camera directly from mouse deltas, in degrees scaled by
// the sensitivity
func (c *Camera) freeLook(xrel, yrel float32) {
	step := c.freeLookSensitivity * FreeLookScale

	c.rotation[1] -= mgl32.DegToRad(xrel * step)
	c.rotation[0] -= mgl32.DegToRad(yrel * step)
}
