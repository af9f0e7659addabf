// Package input defines the discrete events the platform layer delivers to
// the camera: key transitions and mouse motion/button changes.
package input

// Key identifies a keyboard key the camera may bind to
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyS
	KeyA
	KeyD
	KeySpace
	KeyLeftControl
)

func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyS:
		return "S"
	case KeyA:
		return "A"
	case KeyD:
		return "D"
	case KeySpace:
		return "Space"
	case KeyLeftControl:
		return "LeftControl"
	default:
		return "Unknown"
	}
}

// Button identifies one of the tracked mouse buttons
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// ButtonMask is a set of pressed mouse buttons
type ButtonMask uint8

// Mask returns the mask containing only b
func (b Button) Mask() ButtonMask {
	return 1 << b
}

// Has reports whether b is pressed in the mask
func (m ButtonMask) Has(b Button) bool {
	return m&b.Mask() != 0
}

// With returns the mask with b pressed
func (m ButtonMask) With(b Button) ButtonMask {
	return m | b.Mask()
}

// Without returns the mask with b released
func (m ButtonMask) Without(b Button) ButtonMask {
	return m &^ b.Mask()
}

// Event is implemented by every input event type
type Event interface {
	isEvent()
}

// KeyEvent is a key transition. Repeat is set for auto-repeated key-down
// events generated by the platform while a key is held.
type KeyEvent struct {
	Key    Key
	Down   bool
	Repeat bool
}

// MouseMotionEvent carries the absolute cursor position, the motion since the
// previous position and the buttons held during the motion.
type MouseMotionEvent struct {
	X, Y       float32
	XRel, YRel float32
	Buttons    ButtonMask
}

// MouseButtonEvent is a mouse button transition at the given cursor position.
// Buttons is the mask after the transition.
type MouseButtonEvent struct {
	Button  Button
	Down    bool
	X, Y    float32
	Buttons ButtonMask
}

func (KeyEvent) isEvent()         {}
func (MouseMotionEvent) isEvent() {}
func (MouseButtonEvent) isEvent() {}
