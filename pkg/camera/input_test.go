package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/go-landcam/pkg/input"
)

type flatGround float32

func (g flatGround) HeightAt(_, _ float32) float32 {
	return float32(g)
}

// recordingGround answers with height and remembers every query
type recordingGround struct {
	height  func(x, z float32) float32
	queries []mgl32.Vec2
}

func (g *recordingGround) HeightAt(x, z float32) float32 {
	g.queries = append(g.queries, mgl32.Vec2{x, z})
	return g.height(x, z)
}

func (g *recordingGround) last() mgl32.Vec2 {
	return g.queries[len(g.queries)-1]
}

func keyDown(key input.Key) input.KeyEvent {
	return input.KeyEvent{Key: key, Down: true}
}

func keyRepeat(key input.Key) input.KeyEvent {
	return input.KeyEvent{Key: key, Down: true, Repeat: true}
}

func keyUp(key input.Key) input.KeyEvent {
	return input.KeyEvent{Key: key}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		key      input.Key
		expected mgl32.Vec3
	}{
		{input.KeyW, mgl32.Vec3{0, 0, 1}},
		{input.KeyS, mgl32.Vec3{0, 0, -1}},
		{input.KeyA, mgl32.Vec3{-1, 0, 0}},
		{input.KeyD, mgl32.Vec3{1, 0, 0}},
		{input.KeySpace, mgl32.Vec3{0, 1, 0}},
		{input.KeyLeftControl, mgl32.Vec3{0, -1, 0}},
		{input.KeyUnknown, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			c := New(mgl32.Vec3{}, mgl32.Vec3{})

			c.HandleEvent(keyDown(tt.key))
			assert.Equal(t, tt.expected, c.DesiredVelocity())

			c.HandleEvent(keyUp(tt.key))
			assert.Equal(t, mgl32.Vec3{}, c.DesiredVelocity())
		})
	}
}

func TestHeldKeyIgnoresRepeats(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{})

	c.HandleEvent(keyDown(input.KeyW))
	for iter := 0; iter < 20; iter++ {
		c.HandleEvent(keyRepeat(input.KeyW))
		// a platform that does not flag repeats
		c.HandleEvent(keyDown(input.KeyW))
	}
	assert.Equal(t, float32(1), c.DesiredVelocity().Z())

	c.HandleEvent(keyUp(input.KeyW))
	assert.Equal(t, float32(0), c.DesiredVelocity().Z())

	// a second release must not push the axis negative
	c.HandleEvent(keyUp(input.KeyW))
	assert.Equal(t, float32(0), c.DesiredVelocity().Z())
}

func TestOpposingKeysCancel(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{})

	c.HandleEvent(keyDown(input.KeyW))
	c.HandleEvent(keyDown(input.KeyS))
	assert.Equal(t, float32(0), c.DesiredVelocity().Z())

	c.HandleEvent(keyUp(input.KeyS))
	assert.Equal(t, float32(1), c.DesiredVelocity().Z())

	c.HandleEvent(keyDown(input.KeyA))
	c.HandleEvent(keyDown(input.KeySpace))
	assert.Equal(t, mgl32.Vec3{-1, 1, 1}, c.DesiredVelocity())

	c.HandleEvent(keyUp(input.KeyW))
	c.HandleEvent(keyUp(input.KeyA))
	c.HandleEvent(keyUp(input.KeySpace))
	assert.Equal(t, mgl32.Vec3{}, c.DesiredVelocity())
}

func TestDesiredVelocityStaysBounded(t *testing.T) {
	keys := []input.Key{input.KeyW, input.KeyS, input.KeyA, input.KeyD, input.KeySpace, input.KeyLeftControl}
	rng := rand.New(rand.NewSource(7))
	c := New(mgl32.Vec3{}, mgl32.Vec3{})

	for iter := 0; iter < 5000; iter++ {
		key := keys[rng.Intn(len(keys))]
		c.HandleEvent(input.KeyEvent{Key: key, Down: rng.Intn(2) == 0, Repeat: rng.Intn(4) == 0})

		for axis := 0; axis < 3; axis++ {
			v := c.DesiredVelocity()[axis]
			assert.Contains(t, []float32{-1, 0, 1}, v)
		}
	}

	for _, key := range keys {
		c.HandleEvent(keyUp(key))
	}
	assert.Equal(t, mgl32.Vec3{}, c.DesiredVelocity())
}

func TestReleaseKeys(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{})
	c.HandleEvent(keyDown(input.KeyW))
	c.HandleEvent(keyDown(input.KeyD))

	c.ReleaseKeys()
	assert.Equal(t, mgl32.Vec3{}, c.DesiredVelocity())

	// the late key-up after focus returns is ignored
	c.HandleEvent(keyUp(input.KeyW))
	assert.Equal(t, mgl32.Vec3{}, c.DesiredVelocity())

	c.HandleEvent(keyDown(input.KeyW))
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.DesiredVelocity())
}

func TestFreeLook(t *testing.T) {
	c := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.1, 0.2, 0.3}, WithFreeLookSensitivity(2))

	c.HandleEvent(input.MouseMotionEvent{
		XRel:    10,
		YRel:    -5,
		Buttons: input.ButtonMiddle.Mask(),
	})

	// 10px * 2 * 0.1 = 2 degrees of yaw, -5px * 2 * 0.1 = -1 degree of pitch
	assert.InDelta(t, 0.2-mgl32.DegToRad(2), c.Rotation().Y(), 1e-6)
	assert.InDelta(t, 0.1+mgl32.DegToRad(1), c.Rotation().X(), 1e-6)
	assert.InDelta(t, 0.3, c.Rotation().Z(), 1e-6)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position())
}

func TestFreeLookTakesPrecedenceOverDrag(t *testing.T) {
	ground := &recordingGround{height: func(_, _ float32) float32 { return 0 }}
	c := New(mgl32.Vec3{0, 300, 0}, mgl32.Vec3{}, WithHeightSampler(ground))

	c.HandleEvent(input.MouseMotionEvent{
		XRel:    10,
		YRel:    10,
		Buttons: input.ButtonMiddle.Mask() | input.ButtonLeft.Mask(),
	})

	assert.Equal(t, mgl32.Vec3{0, 300, 0}, c.Position())
	assert.Empty(t, ground.queries)
	assert.NotEqual(t, mgl32.Vec3{}, c.Rotation())
}

func TestMotionWithoutButtonsIsIgnored(t *testing.T) {
	c := New(mgl32.Vec3{5, 50, 5}, mgl32.Vec3{0.1, 0.2, 0})

	c.HandleEvent(input.MouseMotionEvent{XRel: 40, YRel: -12})
	c.HandleEvent(input.MouseMotionEvent{XRel: 40, YRel: -12, Buttons: input.ButtonRight.Mask()})
	c.HandleEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Down: true, Buttons: input.ButtonLeft.Mask()})

	assert.Equal(t, mgl32.Vec3{5, 50, 5}, c.Position())
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0}, c.Rotation())
}

func TestDragPansAlongGround(t *testing.T) {
	ground := &recordingGround{height: func(_, _ float32) float32 { return 0 }}
	c := New(mgl32.Vec3{0, 300, 0}, mgl32.Vec3{}, WithHeightSampler(ground))

	// momentum 300/300 = 1: 10 forward along +Z, 4 to the left
	c.HandleEvent(input.MouseMotionEvent{XRel: 4, YRel: 10, Buttons: input.ButtonLeft.Mask()})

	assertVec3InDelta(t, mgl32.Vec3{-4, 300, 10}, c.Position(), 1e-5)

	require.Len(t, ground.queries, 1)
	assert.InDelta(t, 1, ground.last().X(), 1e-5)
	assert.InDelta(t, 15, ground.last().Y(), 1e-5)
}

func TestDragMomentumScalesWithAltitude(t *testing.T) {
	low := New(mgl32.Vec3{0, 150, 0}, mgl32.Vec3{}, WithHeightSampler(flatGround(0)))
	high := New(mgl32.Vec3{0, 600, 0}, mgl32.Vec3{}, WithHeightSampler(flatGround(0)))

	drag := input.MouseMotionEvent{YRel: 10, Buttons: input.ButtonLeft.Mask()}
	low.HandleEvent(drag)
	high.HandleEvent(drag)

	assert.InDelta(t, 5, low.Position().Z(), 1e-5)
	assert.InDelta(t, 20, high.Position().Z(), 1e-5)
}

func TestDragClimbsOverHighGround(t *testing.T) {
	c := New(mgl32.Vec3{0, 300, 0}, mgl32.Vec3{}, WithHeightSampler(flatGround(500)))

	c.HandleEvent(input.MouseMotionEvent{YRel: 1, Buttons: input.ButtonLeft.Mask()})

	assert.Equal(t, float32(513), c.Position().Y())
}

func TestDragNeverDescends(t *testing.T) {
	c := New(mgl32.Vec3{0, 300, 0}, mgl32.Vec3{}, WithHeightSampler(flatGround(-1000)))

	c.HandleEvent(input.MouseMotionEvent{YRel: 25, Buttons: input.ButtonLeft.Mask()})

	assert.Equal(t, float32(300), c.Position().Y())
}

func TestDragStaysAboveGround(t *testing.T) {
	hills := func(x, z float32) float32 {
		return 80 + 60*float32(math.Sin(float64(x)/40)*math.Cos(float64(z)/55))
	}
	ground := &recordingGround{height: hills}
	rng := rand.New(rand.NewSource(42))

	c := New(mgl32.Vec3{0, 100, 0}, mgl32.Vec3{0.4, 0.3, 0}, WithHeightSampler(ground))

	for iter := 0; iter < 500; iter++ {
		before := c.Position().Y()
		c.HandleEvent(input.MouseMotionEvent{
			XRel:    float32(rng.Intn(41) - 20),
			YRel:    float32(rng.Intn(41) - 20),
			Buttons: input.ButtonLeft.Mask(),
		})

		sample := ground.last()
		assert.GreaterOrEqual(t, c.Position().Y(), hills(sample.X(), sample.Y())+GroundClearance)
		assert.GreaterOrEqual(t, c.Position().Y(), before)
	}
}

func TestDragWithoutGroundKeepsAltitude(t *testing.T) {
	tests := []struct {
		name   string
		ground HeightSampler
	}{
		{"nil sampler", nil},
		{"unavailable", flatGround(float32(math.NaN()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(mgl32.Vec3{0, 90, 0}, mgl32.Vec3{-0.5, 0, 0}, WithHeightSampler(tt.ground))

			c.HandleEvent(input.MouseMotionEvent{XRel: 3, YRel: 30, Buttons: input.ButtonLeft.Mask()})

			assert.Equal(t, float32(90), c.Position().Y())
			assert.NotEqual(t, float32(0), c.Position().Z())
		})
	}
}
