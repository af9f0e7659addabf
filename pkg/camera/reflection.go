package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ReflectionCamera renders the scene mirrored across a plane, for reflection
// passes. It differs from Camera only in its view matrix; it is usually built
// with Camera.Reflect once per pass and thrown away afterwards.
type ReflectionCamera struct {
	Camera

	// plane is (normal.xyz, distance); the normal is assumed unit length
	plane mgl32.Vec4
}

// NewReflectionCamera creates a reflection camera. Unlike New, rotation is
// given in degrees.
func NewReflectionCamera(position, rotationDegrees mgl32.Vec3, plane mgl32.Vec4) *ReflectionCamera {
	rotation := mgl32.Vec3{
		mgl32.DegToRad(rotationDegrees.X()),
		mgl32.DegToRad(rotationDegrees.Y()),
		mgl32.DegToRad(rotationDegrees.Z()),
	}

	return &ReflectionCamera{
		Camera: *New(position, rotation),
		plane:  plane,
	}
}

// Plane returns the reflection plane
func (r *ReflectionCamera) Plane() mgl32.Vec4 {
	return r.plane
}

// ViewMatrix is the camera's view applied after mirroring the world across
// the plane
func (r *ReflectionCamera) ViewMatrix() mgl32.Mat4 {
	return r.Camera.ViewMatrix().Mul4(ReflectionMatrix(r.plane))
}

// ViewProjectionMatrix returns Projection * reflected View
func (r *ReflectionCamera) ViewProjectionMatrix() mgl32.Mat4 {
	return r.projection.Mul4(r.ViewMatrix())
}

// DeprojectScreenToWorld is Camera.DeprojectScreenToWorld through the
// reflected view
func (r *ReflectionCamera) DeprojectScreenToWorld(screenPosition, screenSize mgl32.Vec2) (origin, direction mgl32.Vec3) {
	return deprojectScreenToWorld(r.ViewProjectionMatrix(), screenPosition, screenSize)
}

// ProjectWorldToScreen is Camera.ProjectWorldToScreen through the reflected
// view
func (r *ReflectionCamera) ProjectWorldToScreen(worldPosition mgl32.Vec3, viewport mgl32.Vec4) (mgl32.Vec3, bool) {
	return projectWorldToScreen(r.ViewMatrix(), r.projection, worldPosition, viewport)
}

/*
ReflectionMatrix mirrors points across the plane n.p + d = 0, n unit length:

	| 1-2NxNx  -2NxNy   -2NxNz   -2NxD |
	| -2NxNy   1-2NyNy  -2NyNz   -2NyD |
	| -2NxNz   -2NyNz   1-2NzNz  -2NzD |
	|   0        0        0        1   |
*/
func ReflectionMatrix(plane mgl32.Vec4) mgl32.Mat4 {
	nx, ny, nz, d := plane[0], plane[1], plane[2], plane[3]

	return mgl32.Mat4FromRows(
		mgl32.Vec4{1 - 2*nx*nx, -2 * nx * ny, -2 * nx * nz, -2 * nx * d},
		mgl32.Vec4{-2 * nx * ny, 1 - 2*ny*ny, -2 * ny * nz, -2 * ny * d},
		mgl32.Vec4{-2 * nx * nz, -2 * ny * nz, 1 - 2*nz*nz, -2 * nz * d},
		mgl32.Vec4{0, 0, 0, 1},
	)
}
