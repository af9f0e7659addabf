package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// refineSteps is the number of bisection steps after the march brackets a hit
const refineSteps = 16

// Raycast marches a ray over the heightfield and returns the first point
// where it drops below the surface. direction must be normalized.
func (h *Heightfield) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (mgl32.Vec3, bool) {
	above := func(t float32) bool {
		p := origin.Add(direction.Mul(t))
		return p.Y() > h.HeightAt(p.X(), p.Z())
	}

	if !above(0) {
		return origin, true
	}

	step := h.cellSize / 2
	previous := float32(0)
	for t := step; t <= maxDistance+step; t += step {
		t = min(t, maxDistance)
		if !above(t) {
			lo, hi := previous, t
			for iter := 0; iter < refineSteps; iter++ {
				mid := (lo + hi) / 2
				if above(mid) {
					lo = mid
				} else {
					hi = mid
				}
			}
			return origin.Add(direction.Mul(hi)), true
		}
		if t == maxDistance {
			break
		}
		previous = t
	}

	return mgl32.Vec3{}, false
}
