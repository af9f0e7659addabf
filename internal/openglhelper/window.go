package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Window handles GLFW window creation and management
type Window struct {
	glfwWindow *glfw.Window
	log        *zap.Logger

	// framebuffer size in pixels, which differs from the window size on
	// high-DPI displays
	fbWidth  int
	fbHeight int

	onResize func(width, height int)
}

// NewWindow creates a new GLFW window with an OpenGL 4.6 core context
func NewWindow(width, height int, title string, vsync bool, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfwWindow.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("opengl context ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Bool("vsync", vsync),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	w := &Window{
		glfwWindow: glfwWindow,
		log:        log,
	}
	w.fbWidth, w.fbHeight = glfwWindow.GetFramebufferSize()
	glfwWindow.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	return w, nil
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.fbWidth = width
	w.fbHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))

	w.log.Debug("framebuffer resized", zap.Int("width", width), zap.Int("height", height))

	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// OnResize registers fn to run after the framebuffer changes size
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

// Clear clears the bound framebuffer
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// BindDefaultFramebuffer draws to the window again after an offscreen pass
func (w *Window) BindDefaultFramebuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w.fbWidth), int32(w.fbHeight))
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// SetShouldClose asks the frame loop to stop
func (w *Window) SetShouldClose(value bool) {
	w.glfwWindow.SetShouldClose(value)
}

// Close releases all resources
func (w *Window) Close() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// FramebufferSize returns the drawable size in pixels
func (w *Window) FramebufferSize() (width, height int) {
	return w.fbWidth, w.fbHeight
}

// Aspect returns width over height of the framebuffer, 1 while minimised
func (w *Window) Aspect() float32 {
	if w.fbWidth <= 0 || w.fbHeight <= 0 {
		return 1
	}
	return float32(w.fbWidth) / float32(w.fbHeight)
}

// CursorScale converts cursor coordinates (window units) to framebuffer pixels
func (w *Window) CursorScale() mgl32.Vec2 {
	width, height := w.glfwWindow.GetSize()
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{1, 1}
	}
	return mgl32.Vec2{
		float32(w.fbWidth) / float32(width),
		float32(w.fbHeight) / float32(height),
	}
}

// SetTitle sets the window title
func (w *Window) SetTitle(title string) {
	w.glfwWindow.SetTitle(title)
}

// GLFWWindow returns the underlying GLFW window
func (w *Window) GLFWWindow() *glfw.Window {
	return w.glfwWindow
}
