// Package terrain provides a regular-grid heightfield that answers ground
// height queries, cursor ray casts and builds a render mesh.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidSize is returned for grids smaller than 2x2 samples or a
// non-positive cell size
var ErrInvalidSize = errors.New("invalid heightfield size")

// Heightfield stores heights on a width x depth grid of samples spaced
// cellSize apart in X and Z, sample (0, 0) sitting at origin
type Heightfield struct {
	width    int
	depth    int
	cellSize float32
	origin   mgl32.Vec2 // world (x, z) of sample (0, 0)
	heights  []float32
}

// New creates a flat heightfield
func New(width, depth int, cellSize float32, origin mgl32.Vec2) (*Heightfield, error) {
	if width < 2 || depth < 2 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d samples, cell %v", ErrInvalidSize, width, depth, cellSize)
	}

	return &Heightfield{
		width:    width,
		depth:    depth,
		cellSize: cellSize,
		origin:   origin,
		heights:  make([]float32, width*depth),
	}, nil
}

// Params describes a procedurally generated heightfield centred on the world
// origin
type Params struct {
	Width     int
	Depth     int
	CellSize  float32
	Amplitude float32
	Seed      int64
}

// Generate builds rolling hills from a few octaves of randomly phased and
// oriented sine waves
func Generate(p Params) (*Heightfield, error) {
	origin := mgl32.Vec2{
		-float32(p.Width-1) * p.CellSize / 2,
		-float32(p.Depth-1) * p.CellSize / 2,
	}

	h, err := New(p.Width, p.Depth, p.CellSize, origin)
	if err != nil {
		return nil, err
	}

	type wave struct {
		dirX, dirZ float64
		frequency  float64
		phase      float64
		amplitude  float64
	}

	rng := rand.New(rand.NewSource(p.Seed))
	extent := float64(max(p.Width, p.Depth)) * float64(p.CellSize)

	waves := make([]wave, 6)
	amplitude := 1.0
	for i := range waves {
		angle := rng.Float64() * 2 * math.Pi
		waves[i] = wave{
			dirX:      math.Cos(angle),
			dirZ:      math.Sin(angle),
			frequency: 2 * math.Pi * float64(i+1) * (0.75 + rng.Float64()*0.5) / extent,
			phase:     rng.Float64() * 2 * math.Pi,
			amplitude: amplitude,
		}
		amplitude *= 0.5
	}

	for j := 0; j < p.Depth; j++ {
		for i := 0; i < p.Width; i++ {
			x := float64(origin.X() + float32(i)*p.CellSize)
			z := float64(origin.Y() + float32(j)*p.CellSize)

			var sum float64
			for _, w := range waves {
				sum += w.amplitude * math.Sin((x*w.dirX+z*w.dirZ)*w.frequency+w.phase)
			}

			h.Set(i, j, float32(sum)*p.Amplitude)
		}
	}

	return h, nil
}

// Size returns the number of samples along X and Z
func (h *Heightfield) Size() (width, depth int) {
	return h.width, h.depth
}

// CellSize returns the sample spacing in world units
func (h *Heightfield) CellSize() float32 {
	return h.cellSize
}

// Bounds returns the world (x, z) corners covered by the grid
func (h *Heightfield) Bounds() (minimum, maximum mgl32.Vec2) {
	extent := mgl32.Vec2{
		float32(h.width-1) * h.cellSize,
		float32(h.depth-1) * h.cellSize,
	}
	return h.origin, h.origin.Add(extent)
}

// Sample returns the stored height of grid sample (i, j), clamping indices to
// the grid
func (h *Heightfield) Sample(i, j int) float32 {
	i = min(max(i, 0), h.width-1)
	j = min(max(j, 0), h.depth-1)
	return h.heights[j*h.width+i]
}

// Set stores the height of grid sample (i, j). Out of range indices are
// ignored.
func (h *Heightfield) Set(i, j int, height float32) {
	if i < 0 || j < 0 || i >= h.width || j >= h.depth {
		return
	}
	h.heights[j*h.width+i] = height
}

// HeightAt returns the bilinearly interpolated height at world (x, z).
// Positions outside the grid take the height of the nearest edge.
func (h *Heightfield) HeightAt(x, z float32) float32 {
	gx := (x - h.origin.X()) / h.cellSize
	gz := (z - h.origin.Y()) / h.cellSize

	gx = mgl32.Clamp(gx, 0, float32(h.width-1))
	gz = mgl32.Clamp(gz, 0, float32(h.depth-1))

	i := min(int(gx), h.width-2)
	j := min(int(gz), h.depth-2)
	fx := gx - float32(i)
	fz := gz - float32(j)

	h00 := h.Sample(i, j)
	h10 := h.Sample(i+1, j)
	h01 := h.Sample(i, j+1)
	h11 := h.Sample(i+1, j+1)

	near := h00 + (h10-h00)*fx
	far := h01 + (h11-h01)*fx
	return near + (far-near)*fz
}

// NormalAt returns the surface normal at world (x, z) from central
// differences
func (h *Heightfield) NormalAt(x, z float32) mgl32.Vec3 {
	d := h.cellSize
	dx := h.HeightAt(x+d, z) - h.HeightAt(x-d, z)
	dz := h.HeightAt(x, z+d) - h.HeightAt(x, z-d)
	return mgl32.Vec3{-dx, 2 * d, -dz}.Normalize()
}
