package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eyeDepthFor returns the camera-space Z that lands on the given window depth
// for a projection built by Perspective with these clip planes
func eyeDepthFor(depth, near, far float64) float32 {
	a := (far + near) / (far - near)
	b := 2 * far * near / (far - near)
	ndc := 2*depth - 1
	return float32(b / (a - ndc))
}

func TestVerticalFOV(t *testing.T) {
	tests := []struct {
		name     string
		hfov     float32
		aspect   float32
		expected float64
	}{
		{"square", 90, 1, math.Pi / 2},
		{"wide", 90, 2, 2 * math.Atan(0.5)},
		{"tall", 60, 0.5, 2 * math.Atan(math.Tan(math.Pi/6)/0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, VerticalFOV(tt.hfov, tt.aspect), 1e-6)
		})
	}
}

func TestPerspectiveIsLeftHanded(t *testing.T) {
	p := Perspective(90, 1, 1, 100)

	ahead := p.Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	assert.Greater(t, ahead.W(), float32(0))

	behind := p.Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	assert.Less(t, behind.W(), float32(0))

	near := p.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	assert.InDelta(t, -1, near.Z()/near.W(), 1e-5)

	far := p.Mul4x1(mgl32.Vec4{0, 0, 100, 1})
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-5)
}

func TestHorizontalFOVSpansViewportWidth(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{})
	c.SetProjectionPerspective(90, 16.0/9.0, 0.1, 1000)

	// at 90 degrees horizontally, x == z sits on the right edge
	screen, _ := c.ProjectWorldToScreen(mgl32.Vec3{10, 0, 10}, mgl32.Vec4{0, 0, 1600, 900})
	assert.InDelta(t, 1600, screen.X(), 1e-2)
	assert.InDelta(t, 450, screen.Y(), 1e-2)
}

func TestProjectCenterAtAnyDepth(t *testing.T) {
	viewport := mgl32.Vec4{0, 0, 800, 800}

	for _, tt := range poses {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.position, tt.rotation)
			c.SetProjectionPerspective(90, 1, 0.1, 1000)

			for _, depth := range []float32{0.5, 1, 10, 100, 900} {
				screen, ok := c.ProjectWorldToScreen(tt.position.Add(c.Forward().Mul(depth)), viewport)
				assert.True(t, ok, "depth %v", depth)
				assert.InDelta(t, 400, screen.X(), 1e-2, "depth %v", depth)
				assert.InDelta(t, 400, screen.Y(), 1e-2, "depth %v", depth)
			}
		})
	}
}

func TestProjectWorldToScreenDepthBounds(t *testing.T) {
	const near, far = 0.1, 1000
	viewport := mgl32.Vec4{0, 0, 800, 800}

	c := New(mgl32.Vec3{}, mgl32.Vec3{})
	c.SetProjectionPerspective(90, 1, near, far)

	tests := []struct {
		name  string
		depth float64
		ok    bool
	}{
		{"inside", 0.5, true},
		{"behind", 1.01, false},
		{"clipped", -0.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := mgl32.Vec3{0, 0, eyeDepthFor(tt.depth, near, far)}

			screen, ok := c.ProjectWorldToScreen(point, viewport)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.depth, screen.Z(), 1e-3)
			assert.InDelta(t, 400, screen.X(), 1e-3)
			assert.InDelta(t, 400, screen.Y(), 1e-3)
		})
	}
}

func TestProjectWorldToScreenOutsideViewport(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{})
	c.SetProjectionPerspective(90, 1, 0.1, 1000)
	viewport := mgl32.Vec4{0, 0, 800, 800}

	tests := []struct {
		name  string
		point mgl32.Vec3
	}{
		{"right", mgl32.Vec3{100, 0, 10}},
		{"left", mgl32.Vec3{-100, 0, 10}},
		{"above", mgl32.Vec3{0, 100, 10}},
		{"below", mgl32.Vec3{0, -100, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen, ok := c.ProjectWorldToScreen(tt.point, viewport)
			assert.False(t, ok)
			// still written, just outside
			outside := screen.X() < 0 || screen.X() > 800 || screen.Y() < 0 || screen.Y() > 800
			assert.True(t, outside, "screen %v", screen)
		})
	}
}

func TestProjectWorldToScreenOnCameraPlane(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{})

	_, ok := c.ProjectWorldToScreen(mgl32.Vec3{1, 1, 0}, mgl32.Vec4{0, 0, 100, 100})
	assert.False(t, ok)
}

func TestProjectWorldToScreenViewportOffsetAndYDown(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{})
	c.SetProjectionPerspective(90, 800.0/600.0, 0.1, 1000)
	viewport := mgl32.Vec4{100, 50, 800, 600}

	center, ok := c.ProjectWorldToScreen(mgl32.Vec3{0, 0, 20}, viewport)
	require.True(t, ok)
	assert.InDelta(t, 500, center.X(), 1e-3)
	assert.InDelta(t, 350, center.Y(), 1e-3)

	above, ok := c.ProjectWorldToScreen(mgl32.Vec3{0, 2, 20}, viewport)
	require.True(t, ok)
	assert.Less(t, above.Y(), center.Y())

	right, ok := c.ProjectWorldToScreen(mgl32.Vec3{2, 0, 20}, viewport)
	require.True(t, ok)
	assert.Greater(t, right.X(), center.X())
}

func TestDeprojectScreenCenterFollowsForward(t *testing.T) {
	screenSize := mgl32.Vec2{800, 600}

	for _, tt := range poses {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.position, tt.rotation)
			c.SetProjectionPerspective(70, 800.0/600.0, 1, 1000)

			origin, direction := c.DeprojectScreenToWorld(mgl32.Vec2{400, 300}, screenSize)

			assert.InDelta(t, 1, direction.Len(), 1e-5)
			assertVec3InDelta(t, c.Forward(), direction, 1e-3)

			// origin lies ahead of the camera on the forward line
			offset := origin.Sub(tt.position)
			along := offset.Dot(c.Forward())
			assert.Greater(t, along, float32(0))
			assert.InDelta(t, 0, offset.Sub(c.Forward().Mul(along)).Len(), 1e-2)
		})
	}
}

func TestDeprojectScreenCorner(t *testing.T) {
	c := New(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0.2, 0.9, 0})
	c.SetProjectionPerspective(90, 1, 1, 1000)

	_, direction := c.DeprojectScreenToWorld(mgl32.Vec2{0, 0}, mgl32.Vec2{512, 512})

	// top-left of the screen is left of and above the view axis
	assert.Less(t, direction.Dot(c.Right()), float32(0))
	assert.Greater(t, direction.Dot(c.Up()), float32(0))
	assert.Greater(t, direction.Dot(c.Forward()), float32(0))

	// 90 degrees on a square screen: the corner ray is 45 degrees off on each axis
	assert.InDelta(t, direction.Dot(c.Forward()), -direction.Dot(c.Right()), 1e-4)
	assert.InDelta(t, direction.Dot(c.Forward()), direction.Dot(c.Up()), 1e-4)
}

func TestProjectDeprojectRoundTrip(t *testing.T) {
	screenSize := mgl32.Vec2{1280, 720}
	viewport := mgl32.Vec4{0, 0, screenSize.X(), screenSize.Y()}

	c := New(mgl32.Vec3{10, 50, -20}, mgl32.Vec3{0.3, 0.8, 0})
	c.SetProjectionPerspective(80, screenSize.X()/screenSize.Y(), 1, 1000)

	forward, right, up := c.Forward(), c.Right(), c.Up()
	points := []mgl32.Vec3{
		c.Position().Add(forward.Mul(30)),
		c.Position().Add(forward.Mul(30)).Add(right.Mul(5)).Sub(up.Mul(3)),
		c.Position().Add(forward.Mul(5)).Sub(right.Mul(2)).Add(up.Mul(1)),
		c.Position().Add(forward.Mul(200)).Add(right.Mul(60)).Add(up.Mul(40)),
	}

	for i, point := range points {
		screen, ok := c.ProjectWorldToScreen(point, viewport)
		require.True(t, ok, "point %d", i)

		origin, direction := c.DeprojectScreenToWorld(screen.Vec2(), screenSize)

		toPoint := point.Sub(origin)
		distance := toPoint.Sub(direction.Mul(toPoint.Dot(direction))).Len()
		assert.Less(t, distance, float32(0.05*(1+toPoint.Len()/100)), "point %d", i)
	}
}

func TestHomogeneousDivide(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, homogeneousDivide(mgl32.Vec4{2, 4, 6, 2}))
	// W == 0 leaves the point as is
	assert.Equal(t, mgl32.Vec3{2, 4, 6}, homogeneousDivide(mgl32.Vec4{2, 4, 6, 0}))
}
