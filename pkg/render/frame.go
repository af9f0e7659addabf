package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-landcam/pkg/camera"
	"github.com/leterax/go-landcam/pkg/config"
	"github.com/leterax/go-landcam/pkg/input"
)

type deprojector interface {
	DeprojectScreenToWorld(screenPosition, screenSize mgl32.Vec2) (origin, direction mgl32.Vec3)
}

type projector interface {
	ProjectWorldToScreen(worldPosition mgl32.Vec3, viewport mgl32.Vec4) (mgl32.Vec3, bool)
}

type raycaster interface {
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (mgl32.Vec3, bool)
}

// dispatch feeds a frame's events to the camera in order and returns the
// cursor positions of right-button presses
func dispatch(cam *camera.Camera, events []input.Event) []mgl32.Vec2 {
	var picks []mgl32.Vec2
	for _, e := range events {
		cam.HandleEvent(e)

		if b, ok := e.(input.MouseButtonEvent); ok && b.Button == input.ButtonRight && b.Down {
			picks = append(picks, mgl32.Vec2{b.X, b.Y})
		}
	}
	return picks
}

// pickGround casts the ray under a framebuffer pixel onto the ground
func pickGround(view deprojector, ground raycaster, pixel, screenSize mgl32.Vec2, maxDistance float32) (mgl32.Vec3, bool) {
	origin, direction := view.DeprojectScreenToWorld(pixel, screenSize)
	if direction.Len() == 0 {
		return mgl32.Vec3{}, false
	}
	return ground.Raycast(origin, direction, maxDistance)
}

// waterVisible reports whether any corner or the centre of the water
// rectangle lands inside the viewport
func waterVisible(view projector, minimum, maximum mgl32.Vec2, level float32, viewport mgl32.Vec4) bool {
	centre := minimum.Add(maximum).Mul(0.5)
	points := []mgl32.Vec3{
		{minimum.X(), level, minimum.Y()},
		{maximum.X(), level, minimum.Y()},
		{maximum.X(), level, maximum.Y()},
		{minimum.X(), level, maximum.Y()},
		{centre.X(), level, centre.Y()},
	}

	for _, p := range points {
		if _, ok := view.ProjectWorldToScreen(p, viewport); ok {
			return true
		}
	}
	return false
}

// applyTuning updates the camera from a reloaded config. The pose is left
// alone.
func applyTuning(cam *camera.Camera, c config.CameraConfig, aspect float32) {
	cam.SetMaxSpeed(c.MaxSpeed)
	cam.SetFreeLookSensitivity(c.FreeLookSensitivity)
	cam.SetProjectionPerspective(c.HorizontalFOV, aspect, c.Near, c.Far)
}
