package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SetProjectionPerspective builds the projection from a horizontal field of
// view in degrees. The vertical field of view handed to the perspective
// builder is 2*atan(tan(hfov/2)/aspect).
func (c *Camera) SetProjectionPerspective(horizontalFOV, aspect, near, far float32) {
	c.projection = Perspective(horizontalFOV, aspect, near, far)
}

// VerticalFOV converts a horizontal field of view in degrees to a vertical
// one in radians for the given aspect ratio (width / height)
func VerticalFOV(horizontalFOV, aspect float32) float32 {
	half := math.Tan(float64(mgl32.DegToRad(horizontalFOV)) / 2)
	return float32(2 * math.Atan(half/float64(aspect)))
}

// Perspective returns a left-handed perspective projection (camera looks down
// +Z, clip depth -1..1) from a horizontal field of view in degrees
func Perspective(horizontalFOV, aspect, near, far float32) mgl32.Mat4 {
	rh := mgl32.Perspective(VerticalFOV(horizontalFOV, aspect), aspect, near, far)
	return rh.Mul4(mgl32.Scale3D(1, 1, -1))
}

// DeprojectScreenToWorld turns a screen position (origin top-left, Y down)
// into a world-space ray. The origin is the unprojection of clip depth 0 and
// the direction points towards the unprojection of clip depth 0.5.
func (c *Camera) DeprojectScreenToWorld(screenPosition, screenSize mgl32.Vec2) (origin, direction mgl32.Vec3) {
	return deprojectScreenToWorld(c.ViewProjectionMatrix(), screenPosition, screenSize)
}

// ProjectWorldToScreen projects a world position into the viewport
// (x, y, width, height), origin top-left and Y down. Z of the result is the
// window depth in 0..1. The position is always written; it is only valid when
// ok is true, i.e. it lies inside the viewport and 0 <= depth <= 1.
func (c *Camera) ProjectWorldToScreen(worldPosition mgl32.Vec3, viewport mgl32.Vec4) (screen mgl32.Vec3, ok bool) {
	return projectWorldToScreen(c.ViewMatrix(), c.projection, worldPosition, viewport)
}

func deprojectScreenToWorld(viewProjection mgl32.Mat4, screenPosition, screenSize mgl32.Vec2) (mgl32.Vec3, mgl32.Vec3) {
	normalizedX := screenPosition.X() / screenSize.X()
	normalizedY := screenPosition.Y() / screenSize.Y()

	// screen Y grows downward, clip Y upward
	clipX := (normalizedX - 0.5) * 2
	clipY := ((1 - normalizedY) - 0.5) * 2

	rayStartClip := mgl32.Vec4{clipX, clipY, 0, 1}
	rayEndClip := mgl32.Vec4{clipX, clipY, 0.5, 1}

	inverse := viewProjection.Inv()

	rayStart := homogeneousDivide(inverse.Mul4x1(rayStartClip))
	rayEnd := homogeneousDivide(inverse.Mul4x1(rayEndClip))

	return rayStart, rayEnd.Sub(rayStart).Normalize()
}

// homogeneousDivide drops W, dividing by it unless it is zero
func homogeneousDivide(v mgl32.Vec4) mgl32.Vec3 {
	p := v.Vec3()
	if v.W() != 0 {
		p = p.Mul(1 / v.W())
	}
	return p
}

func projectWorldToScreen(view, projection mgl32.Mat4, worldPosition mgl32.Vec3, viewport mgl32.Vec4) (mgl32.Vec3, bool) {
	clip := projection.Mul4(view).Mul4x1(worldPosition.Vec4(1))
	ndc := homogeneousDivide(clip)

	screen := mgl32.Vec3{
		viewport.X() + viewport.Z()*(ndc.X()*0.5+0.5),
		viewport.Y() + viewport.W()*(1-(ndc.Y()*0.5+0.5)),
		ndc.Z()*0.5 + 0.5,
	}

	// on the camera plane, no meaningful screen position
	if clip.W() == 0 {
		return screen, false
	}

	if screen.X() < viewport.X() || screen.Y() < viewport.Y() ||
		screen.X() > viewport.X()+viewport.Z() || screen.Y() > viewport.Y()+viewport.W() {
		return screen, false
	}

	// behind the camera
	if screen.Z() > 1 {
		return screen, false
	}

	// clipped
	if screen.Z() < 0 {
		return screen, false
	}

	return screen, true
}
