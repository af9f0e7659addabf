package input

// Queue buffers the events produced between two frames. The platform layer
// pushes raw transitions and cursor positions; the frame loop drains the
// queue once per frame before integrating motion.
type Queue struct {
	events []Event

	buttons ButtonMask

	cursorX, cursorY float64
	haveCursor       bool
}

// NewQueue creates an empty event queue
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 32),
	}
}

// PushKey records a key transition
func (q *Queue) PushKey(key Key, down, repeat bool) {
	q.events = append(q.events, KeyEvent{Key: key, Down: down, Repeat: repeat})
}

// PushCursor records an absolute cursor position and emits a motion event
// relative to the previous one. The first position only seeds the tracker.
func (q *Queue) PushCursor(x, y float64) {
	if !q.haveCursor {
		q.cursorX, q.cursorY = x, y
		q.haveCursor = true
		return
	}

	xrel := float32(x - q.cursorX)
	yrel := float32(y - q.cursorY)
	q.cursorX, q.cursorY = x, y

	if xrel == 0 && yrel == 0 {
		return
	}

	q.events = append(q.events, MouseMotionEvent{
		X:       float32(x),
		Y:       float32(y),
		XRel:    xrel,
		YRel:    yrel,
		Buttons: q.buttons,
	})
}

// PushButton records a mouse button transition and updates the held mask
func (q *Queue) PushButton(button Button, down bool) {
	if down {
		q.buttons = q.buttons.With(button)
	} else {
		q.buttons = q.buttons.Without(button)
	}

	q.events = append(q.events, MouseButtonEvent{
		Button:  button,
		Down:    down,
		X:       float32(q.cursorX),
		Y:       float32(q.cursorY),
		Buttons: q.buttons,
	})
}

// ResetCursor forgets the last cursor position so the next one does not
// produce a jump, e.g. after the cursor was captured or released.
func (q *Queue) ResetCursor() {
	q.haveCursor = false
}

// Cursor returns the last known cursor position
func (q *Queue) Cursor() (x, y float64) {
	return q.cursorX, q.cursorY
}

// Buttons returns the currently held mouse buttons
func (q *Queue) Buttons() ButtonMask {
	return q.buttons
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns the pending events in arrival order and empties the queue.
// The returned slice is only valid until the next push.
func (q *Queue) Drain() []Event {
	events := q.events
	q.events = q.events[:0]
	return events
}
