package terrain

// FloatsPerVertex is the stride of Mesh vertices: position (3), normal (3),
// texture coordinates (2)
const FloatsPerVertex = 8

// Mesh triangulates the grid. Every sample becomes one vertex; each cell is
// split into two triangles.
func (h *Heightfield) Mesh() (vertices []float32, indices []uint32) {
	vertices = make([]float32, 0, h.width*h.depth*FloatsPerVertex)
	indices = make([]uint32, 0, (h.width-1)*(h.depth-1)*6)

	for j := 0; j < h.depth; j++ {
		for i := 0; i < h.width; i++ {
			x := h.origin.X() + float32(i)*h.cellSize
			z := h.origin.Y() + float32(j)*h.cellSize
			n := h.NormalAt(x, z)

			vertices = append(vertices,
				x, h.Sample(i, j), z,
				n.X(), n.Y(), n.Z(),
				float32(i)/float32(h.width-1), float32(j)/float32(h.depth-1),
			)
		}
	}

	for j := 0; j < h.depth-1; j++ {
		for i := 0; i < h.width-1; i++ {
			topLeft := uint32(j*h.width + i)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(h.width)
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	return vertices, indices
}
