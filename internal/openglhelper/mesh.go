package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of floats per vertex: position (3), normal (3),
// texture coordinates (2)
const VertexStride = 8

// Mesh is an indexed triangle list uploaded to the GPU
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewMesh uploads interleaved vertices laid out as VertexStride floats
func NewMesh(vertices []float32, indices []uint32) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices)
	ebo := NewEBO(indices)

	const stride = VertexStride * 4
	// Position attribute (3 floats)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, stride, 0)
	// Normal attribute (3 floats)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, stride, 3*4)
	// Texture coordinates attribute (2 floats)
	vao.SetVertexAttribPointer(2, 2, gl.FLOAT, false, stride, 6*4)

	vao.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(indices)),
	}
}

// Draw renders the mesh with whatever program is bound
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// QuadVertices returns a horizontal rectangle at height y spanning minimum
// to maximum in (x, z), facing +Y
func QuadVertices(minimum, maximum mgl32.Vec2, y float32) ([]float32, []uint32) {
	x0, z0 := minimum.X(), minimum.Y()
	x1, z1 := maximum.X(), maximum.Y()

	vertices := []float32{
		x0, y, z0, 0, 1, 0, 0, 0,
		x1, y, z0, 0, 1, 0, 1, 0,
		x1, y, z1, 0, 1, 0, 1, 1,
		x0, y, z1, 0, 1, 0, 0, 1,
	}
	indices := []uint32{
		0, 3, 1,
		1, 3, 2,
	}
	return vertices, indices
}

// NewQuad uploads QuadVertices
func NewQuad(minimum, maximum mgl32.Vec2, y float32) *Mesh {
	return NewMesh(QuadVertices(minimum, maximum, y))
}
