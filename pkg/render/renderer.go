// Package render draws the terrain and its water reflection from the camera's
// matrices and runs the interactive frame loop.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/leterax/go-landcam/internal/openglhelper"
	"github.com/leterax/go-landcam/pkg/camera"
	"github.com/leterax/go-landcam/pkg/config"
	"github.com/leterax/go-landcam/pkg/input"
	"github.com/leterax/go-landcam/pkg/input/glfwinput"
	"github.com/leterax/go-landcam/pkg/render/shaders"
	"github.com/leterax/go-landcam/pkg/terrain"
)

// Renderer handles rendering logic and the frame loop
type Renderer struct {
	cfg config.Config
	log *zap.Logger

	window *openglhelper.Window
	camera *camera.Camera
	ground *terrain.Heightfield
	queue  *input.Queue
	source *glfwinput.Source

	terrainShader *openglhelper.Shader
	waterShader   *openglhelper.Shader
	terrainMesh   *openglhelper.Mesh
	waterMesh     *openglhelper.Mesh
	reflection    *openglhelper.Framebuffer

	// Timing
	lastFrameTime float64
	statsStart    float64
	frames        int
	reflections   int
}

// New opens the window and uploads the scene described by cfg
func New(cfg config.Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ground, err := terrain.Generate(cfg.Terrain.Params())
	if err != nil {
		return nil, fmt.Errorf("failed to generate terrain: %w", err)
	}

	window, err := openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	cam := camera.New(cfg.Camera.StartPosition(), cfg.Camera.StartRotation(),
		camera.WithMaxSpeed(cfg.Camera.MaxSpeed),
		camera.WithFreeLookSensitivity(cfg.Camera.FreeLookSensitivity),
		camera.WithHeightSampler(ground),
	)
	cam.SetProjectionPerspective(cfg.Camera.HorizontalFOV, window.Aspect(), cfg.Camera.Near, cfg.Camera.Far)

	r := &Renderer{
		cfg:    cfg,
		log:    log,
		window: window,
		camera: cam,
		ground: ground,
		queue:  input.NewQueue(),
	}

	r.source = glfwinput.NewSource(r.queue)
	r.source.OnKey = r.onKey
	r.source.Install(window.GLFWWindow())
	window.GLFWWindow().SetFocusCallback(r.focusCallback)
	window.OnResize(r.resize)

	if err := r.initScene(); err != nil {
		r.Cleanup()
		return nil, err
	}

	width, depth := ground.Size()
	log.Info("scene ready",
		zap.Int("terrain_width", width),
		zap.Int("terrain_depth", depth),
		zap.Float32("water_level", cfg.Water.Level),
	)

	return r, nil
}

func (r *Renderer) initScene() error {
	var err error
	r.terrainShader, err = openglhelper.LoadShaderFromFS(shaders.FS, "terrain.vert", "terrain.frag")
	if err != nil {
		return fmt.Errorf("failed to load terrain shader: %w", err)
	}

	r.waterShader, err = openglhelper.LoadShaderFromFS(shaders.FS, "water.vert", "water.frag")
	if err != nil {
		return fmt.Errorf("failed to load water shader: %w", err)
	}

	r.terrainMesh = openglhelper.NewMesh(r.ground.Mesh())

	minimum, maximum := r.ground.Bounds()
	r.waterMesh = openglhelper.NewQuad(minimum, maximum, r.cfg.Water.Level)

	width, height := r.window.FramebufferSize()
	r.reflection, err = openglhelper.NewFramebuffer(reflectionSize(width, height))
	if err != nil {
		return fmt.Errorf("failed to create reflection target: %w", err)
	}

	return nil
}

func reflectionSize(width, height int) (int, int) {
	return int(float32(width) * ReflectionScale), int(float32(height) * ReflectionScale)
}

// Run starts the main rendering loop. It returns when the window is closed or
// ctx is done. Configs received on updates retune the camera.
func (r *Renderer) Run(ctx context.Context, updates <-chan config.Config) {
	r.lastFrameTime = glfw.GetTime()
	r.statsStart = r.lastFrameTime

	for !r.window.ShouldClose() {
		select {
		case <-ctx.Done():
			r.log.Info("frame loop stopped", zap.Error(ctx.Err()))
			return
		case cfg, ok := <-updates:
			if ok {
				r.reconfigure(cfg)
			} else {
				updates = nil
			}
		default:
		}

		currentTime := glfw.GetTime()
		dt := time.Duration((currentTime - r.lastFrameTime) * float64(time.Second))
		r.lastFrameTime = currentTime

		r.window.PollEvents()
		r.update(dt)
		r.render()
		r.window.SwapBuffers()

		r.recordFrame(currentTime)
	}
}

// update applies this frame's input, then integrates motion
func (r *Renderer) update(dt time.Duration) {
	for _, cursor := range dispatch(r.camera, r.queue.Drain()) {
		r.pick(cursor)
	}
	r.camera.Update(dt)
}

func (r *Renderer) pick(cursor mgl32.Vec2) {
	scale := r.window.CursorScale()
	pixel := mgl32.Vec2{cursor.X() * scale.X(), cursor.Y() * scale.Y()}
	width, height := r.window.FramebufferSize()

	hit, ok := pickGround(r.camera, r.ground, pixel, mgl32.Vec2{float32(width), float32(height)}, r.cfg.Camera.Far)
	if !ok {
		r.log.Info("pick missed terrain", zap.Float32("x", pixel.X()), zap.Float32("y", pixel.Y()))
		return
	}

	r.log.Info("picked terrain",
		zap.Float32("x", hit.X()),
		zap.Float32("y", hit.Y()),
		zap.Float32("z", hit.Z()),
		zap.Bool("under_water", hit.Y() < r.cfg.Water.Level),
	)
}

func (r *Renderer) render() {
	width, height := r.window.FramebufferSize()
	viewport := mgl32.Vec4{0, 0, float32(width), float32(height)}
	minimum, maximum := r.ground.Bounds()

	reflected := waterVisible(r.camera, minimum, maximum, r.cfg.Water.Level, viewport)
	if reflected {
		r.renderReflection()
		r.reflections++
	}

	r.window.BindDefaultFramebuffer()
	r.window.Clear(SkyColor)
	r.drawTerrain(r.camera, noClip)
	if reflected {
		r.drawWater(r.camera)
	}
}

// renderReflection draws the terrain above the water, mirrored in it, into the
// reflection target
func (r *Renderer) renderReflection() {
	plane := r.cfg.Water.Plane()
	mirror := r.camera.Reflect(plane)

	r.reflection.Bind()
	r.window.Clear(SkyColor)

	gl.Enable(gl.CLIP_DISTANCE0)
	r.drawTerrain(mirror, plane)
	gl.Disable(gl.CLIP_DISTANCE0)
}

func (r *Renderer) drawTerrain(view camera.Viewer, clip mgl32.Vec4) {
	r.terrainShader.Use()
	r.terrainShader.SetMat4("viewProjection", view.ViewProjectionMatrix())
	r.terrainShader.SetVec4("clipPlane", clip)
	r.terrainShader.SetVec3("sunDirection", SunDirection)
	r.terrainShader.SetFloat("waterLevel", r.cfg.Water.Level)
	r.terrainShader.SetFloat("amplitude", r.cfg.Terrain.Amplitude)
	r.terrainMesh.Draw()
}

func (r *Renderer) drawWater(view camera.Viewer) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	defer gl.Disable(gl.BLEND)

	r.reflection.BindTexture(ReflectionTextureUnit)

	r.waterShader.Use()
	r.waterShader.SetMat4("viewProjection", view.ViewProjectionMatrix())
	r.waterShader.SetInt("reflection", ReflectionTextureUnit)
	r.waterShader.SetVec4("waterColor", WaterColor)
	r.waterShader.SetFloat("reflectivity", WaterReflectivity)
	r.waterMesh.Draw()
}

func (r *Renderer) recordFrame(now float64) {
	r.frames++
	elapsed := now - r.statsStart
	if elapsed < StatsInterval {
		return
	}

	r.log.Debug("frame stats",
		zap.Float64("fps", float64(r.frames)/elapsed),
		zap.Int("reflection_passes", r.reflections),
		zap.Stringer("camera", vec3Stringer(r.camera.Position())),
	)
	r.frames = 0
	r.reflections = 0
	r.statsStart = now
}

func (r *Renderer) reconfigure(cfg config.Config) {
	if cfg.Terrain != r.cfg.Terrain || cfg.Water != r.cfg.Water || cfg.Window != r.cfg.Window {
		r.log.Warn("terrain, water and window changes apply on restart")
	}

	r.cfg.Camera = cfg.Camera
	applyTuning(r.camera, cfg.Camera, r.window.Aspect())

	r.log.Info("camera retuned",
		zap.Float32("max_speed", cfg.Camera.MaxSpeed),
		zap.Float32("free_look_sensitivity", cfg.Camera.FreeLookSensitivity),
		zap.Float32("horizontal_fov", cfg.Camera.HorizontalFOV),
	)
}

func (r *Renderer) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}

	c := r.cfg.Camera
	r.camera.SetProjectionPerspective(c.HorizontalFOV, r.window.Aspect(), c.Near, c.Far)

	if err := r.reflection.Resize(reflectionSize(width, height)); err != nil {
		r.log.Error("failed to resize reflection target", zap.Error(err))
	}
}

func (r *Renderer) onKey(key glfw.Key, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		r.window.SetShouldClose(true)
	}
}

// focusCallback drops held movement keys and the cursor anchor when the
// window loses focus, since the matching releases never arrive
func (r *Renderer) focusCallback(_ *glfw.Window, focused bool) {
	if focused {
		return
	}
	r.camera.ReleaseKeys()
	r.queue.ResetCursor()
}

// Cleanup frees all resources
func (r *Renderer) Cleanup() {
	if r.terrainMesh != nil {
		r.terrainMesh.Delete()
	}
	if r.waterMesh != nil {
		r.waterMesh.Delete()
	}
	if r.terrainShader != nil {
		r.terrainShader.Delete()
	}
	if r.waterShader != nil {
		r.waterShader.Delete()
	}
	if r.reflection != nil {
		r.reflection.Delete()
	}

	r.window.Close()
}

type vec3Stringer mgl32.Vec3

func (v vec3Stringer) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v[0], v[1], v[2])
}
