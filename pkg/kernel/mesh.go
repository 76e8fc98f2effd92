package kernel

// Mesh is a triangle mesh in part-local coordinates. Arrays are flat:
// vertices has 3 floats per vertex (x,y,z), indices has 3 uint32s per
// triangle. Vertices double as the node cloud handed to the
// interference solver, so they stay in float64.
type Mesh struct {
	Vertices []float64 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // archetype this mesh belongs to
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// Vertex returns the coordinates of vertex i.
func (m *Mesh) Vertex(i int) (x, y, z float64) {
	return m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}
