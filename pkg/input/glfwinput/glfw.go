// Package glfwinput feeds GLFW window callbacks into an input.Queue
package glfwinput

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/leterax/go-landcam/pkg/input"
)

// Key bindings understood by the camera
var keyMap = map[glfw.Key]input.Key{
	glfw.KeyW:           input.KeyW,
	glfw.KeyS:           input.KeyS,
	glfw.KeyA:           input.KeyA,
	glfw.KeyD:           input.KeyD,
	glfw.KeySpace:       input.KeySpace,
	glfw.KeyLeftControl: input.KeyLeftControl,
}

var buttonMap = map[glfw.MouseButton]input.Button{
	glfw.MouseButtonLeft:   input.ButtonLeft,
	glfw.MouseButtonMiddle: input.ButtonMiddle,
	glfw.MouseButtonRight:  input.ButtonRight,
}

// Source translates GLFW callbacks into queue pushes. Keys and buttons
// without a binding are dropped here.
type Source struct {
	queue *input.Queue

	// OnKey, if set, sees every raw key callback before translation. The
	// renderer uses it for window-level shortcuts.
	OnKey func(key glfw.Key, action glfw.Action, mods glfw.ModifierKey)
}

// NewSource creates a source writing into queue
func NewSource(queue *input.Queue) *Source {
	return &Source{queue: queue}
}

// Install registers the source's callbacks on the window
func (s *Source) Install(window *glfw.Window) {
	window.SetKeyCallback(s.KeyCallback)
	window.SetCursorPosCallback(s.CursorPosCallback)
	window.SetMouseButtonCallback(s.MouseButtonCallback)
}

// KeyCallback is a glfw.KeyCallback
func (s *Source) KeyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if s.OnKey != nil {
		s.OnKey(key, action, mods)
	}

	bound, ok := keyMap[key]
	if !ok {
		return
	}

	switch action {
	case glfw.Press:
		s.queue.PushKey(bound, true, false)
	case glfw.Repeat:
		s.queue.PushKey(bound, true, true)
	case glfw.Release:
		s.queue.PushKey(bound, false, false)
	}
}

// CursorPosCallback is a glfw.CursorPosCallback
func (s *Source) CursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	s.queue.PushCursor(xpos, ypos)
}

// MouseButtonCallback is a glfw.MouseButtonCallback
func (s *Source) MouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	bound, ok := buttonMap[button]
	if !ok {
		return
	}
	s.queue.PushButton(bound, action == glfw.Press)
}
