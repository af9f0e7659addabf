package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(t *testing.T, height float32) *Heightfield {
	t.Helper()
	h, err := New(11, 11, 10, mgl32.Vec2{-50, -50})
	require.NoError(t, err)
	for j := 0; j < 11; j++ {
		for i := 0; i < 11; i++ {
			h.Set(i, j, height)
		}
	}
	return h
}

func TestRaycastStraightDown(t *testing.T) {
	h := flat(t, 7)

	hit, ok := h.Raycast(mgl32.Vec3{3, 100, -4}, mgl32.Vec3{0, -1, 0}, 500)
	require.True(t, ok)
	assert.InDelta(t, 3, hit.X(), 1e-4)
	assert.InDelta(t, 7, hit.Y(), 1e-2)
	assert.InDelta(t, -4, hit.Z(), 1e-4)
}

func TestRaycastSlanted(t *testing.T) {
	h := flat(t, 0)
	direction := mgl32.Vec3{1, -1, 0}.Normalize()

	hit, ok := h.Raycast(mgl32.Vec3{-20, 20, 0}, direction, 100)
	require.True(t, ok)
	assert.InDelta(t, 0, hit.X(), 1e-2)
	assert.InDelta(t, 0, hit.Y(), 1e-2)
}

func TestRaycastRamp(t *testing.T) {
	h := ramp(t)

	// surface is y = x + 4
	hit, ok := h.Raycast(mgl32.Vec3{0, 50, 2}, mgl32.Vec3{0, -1, 0}, 100)
	require.True(t, ok)
	assert.InDelta(t, 4, hit.Y(), 1e-2)
}

func TestRaycastMisses(t *testing.T) {
	h := flat(t, 0)

	tests := []struct {
		name        string
		origin      mgl32.Vec3
		direction   mgl32.Vec3
		maxDistance float32
	}{
		{"pointing up", mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, 1, 0}, 100},
		{"parallel", mgl32.Vec3{0, 10, 0}, mgl32.Vec3{1, 0, 0}, 100},
		{"too short", mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := h.Raycast(tt.origin, tt.direction, tt.maxDistance)
			assert.False(t, ok)
		})
	}
}

func TestRaycastFromBelowSurface(t *testing.T) {
	h := flat(t, 10)
	origin := mgl32.Vec3{1, 2, 3}

	hit, ok := h.Raycast(origin, mgl32.Vec3{0, 1, 0}, 100)
	require.True(t, ok)
	assert.Equal(t, origin, hit)
}
