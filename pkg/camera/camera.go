// Package camera implements a free-flying 3D camera: a rigid-body pose with
// Euler orientation, view/projection derivation, screen<->world conversion,
// input-driven motion and a planar reflection variant.
//
// Matrices are mgl32 column-major. Camera space is left-handed: the camera
// looks down +Z, which is also what Forward returns. Rotation is stored in
// radians as (pitch, yaw, roll) around (X, Y, Z) and composed Z, then X,
// then Y.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-landcam/pkg/input"
)

// Viewer is the read side of a camera consumed by rendering
type Viewer interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ViewProjectionMatrix() mgl32.Mat4
	Position() mgl32.Vec3
	Rotation() mgl32.Vec3
}

// HeightSampler answers ground height queries used to keep the camera above
// terrain. A NaN answer means no height is available at that point.
type HeightSampler interface {
	HeightAt(x, z float32) float32
}

var (
	_ Viewer = (*Camera)(nil)
	_ Viewer = (*ReflectionCamera)(nil)
)

// Camera owns a pose, the motion state driven by input and a projection
type Camera struct {
	position mgl32.Vec3
	rotation mgl32.Vec3 // radians

	// desiredVelocity accumulates the held movement keys, one signed unit
	// per key, in camera-local axes
	desiredVelocity mgl32.Vec3
	velocity        mgl32.Vec3 // camera-local, world units per microsecond
	held            map[input.Key]bool

	maxSpeed            float32
	freeLookSensitivity float32

	projection mgl32.Mat4

	ground HeightSampler
}

// Option configures a Camera at construction
type Option func(*Camera)

// WithMaxSpeed sets the target speed of a held movement key
func WithMaxSpeed(speed float32) Option {
	return func(c *Camera) {
		c.maxSpeed = speed
	}
}

// WithFreeLookSensitivity sets the free-look mouse sensitivity
func WithFreeLookSensitivity(sensitivity float32) Option {
	return func(c *Camera) {
		c.freeLookSensitivity = sensitivity
	}
}

// WithHeightSampler sets the ground used by drag panning
func WithHeightSampler(ground HeightSampler) Option {
	return func(c *Camera) {
		c.ground = ground
	}
}

// New creates a camera at position with rotation given in radians. The
// projection starts as a default perspective with a square aspect.
func New(position, rotation mgl32.Vec3, options ...Option) *Camera {
	c := &Camera{
		position:            position,
		rotation:            rotation,
		held:                make(map[input.Key]bool, 6),
		maxSpeed:            DefaultMaxSpeed,
		freeLookSensitivity: DefaultFreeLookSensitivity,
	}

	for _, option := range options {
		option(c)
	}

	c.SetProjectionPerspective(DefaultHorizontalFOV, 1, DefaultNear, DefaultFar)

	return c
}

// Position returns the camera position in world space
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// SetPosition moves the camera
func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.position = position
}

// Rotation returns the Euler rotation in radians
func (c *Camera) Rotation() mgl32.Vec3 {
	return c.rotation
}

// SetRotation sets the Euler rotation in radians
func (c *Camera) SetRotation(rotation mgl32.Vec3) {
	c.rotation = rotation
}

// Velocity returns the smoothed camera-local velocity
func (c *Camera) Velocity() mgl32.Vec3 {
	return c.velocity
}

// DesiredVelocity returns the accumulated direction of the held movement keys
func (c *Camera) DesiredVelocity() mgl32.Vec3 {
	return c.desiredVelocity
}

func (c *Camera) MaxSpeed() float32 {
	return c.maxSpeed
}

func (c *Camera) SetMaxSpeed(speed float32) {
	c.maxSpeed = speed
}

func (c *Camera) FreeLookSensitivity() float32 {
	return c.freeLookSensitivity
}

func (c *Camera) SetFreeLookSensitivity(sensitivity float32) {
	c.freeLookSensitivity = sensitivity
}

// SetHeightSampler replaces the ground used by drag panning. nil disables
// the ground clamp.
func (c *Camera) SetHeightSampler(ground HeightSampler) {
	c.ground = ground
}

// RotationMatrix composes the Euler rotation as Z, then X, then Y
func (c *Camera) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(c.rotation.Z()).
		Mul4(mgl32.HomogRotate3DX(c.rotation.X())).
		Mul4(mgl32.HomogRotate3DY(c.rotation.Y()))
}

// ViewMatrix maps world space into camera space: R * (p - position)
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return viewMatrix(c.RotationMatrix(), c.position)
}

func viewMatrix(rotation mgl32.Mat4, position mgl32.Vec3) mgl32.Mat4 {
	return rotation.Mul4(mgl32.Translate3D(-position.X(), -position.Y(), -position.Z()))
}

// ProjectionMatrix returns the current projection
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// SetProjectionMatrix replaces the projection
func (c *Camera) SetProjectionMatrix(projection mgl32.Mat4) {
	c.projection = projection
}

// ViewProjectionMatrix returns Projection * View
func (c *Camera) ViewProjectionMatrix() mgl32.Mat4 {
	return c.projection.Mul4(c.ViewMatrix())
}

// Forward returns the world-space direction the camera looks at. Forward is
// +Z here, not the -Z of the usual OpenGL convention.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.inverseRotation().Mul3x1(mgl32.Vec3{0, 0, 1})
}

// Right returns the world-space right direction
func (c *Camera) Right() mgl32.Vec3 {
	return c.inverseRotation().Mul3x1(mgl32.Vec3{1, 0, 0})
}

// Up returns the world-space up direction
func (c *Camera) Up() mgl32.Vec3 {
	return c.inverseRotation().Mul3x1(mgl32.Vec3{0, 1, 0})
}

func (c *Camera) inverseRotation() mgl32.Mat3 {
	return c.RotationMatrix().Mat3().Transpose()
}

// Reflect creates a reflection camera with this camera's pose and projection,
// mirrored across plane. The plane normal must be unit length.
func (c *Camera) Reflect(plane mgl32.Vec4) *ReflectionCamera {
	rotation := mgl32.Vec3{
		mgl32.RadToDeg(c.rotation.X()),
		mgl32.RadToDeg(c.rotation.Y()),
		mgl32.RadToDeg(c.rotation.Z()),
	}

	reflection := NewReflectionCamera(c.position, rotation, plane)
	reflection.SetProjectionMatrix(c.projection)

	return reflection
}
