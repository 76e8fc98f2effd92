package solid

import (
	"github.com/bricklab/studwork/pkg/brick"
	"github.com/bricklab/studwork/pkg/interference"
	"github.com/bricklab/studwork/pkg/kernel"
)

// boundaryTol pads the cavity rectangle when classifying mesh vertices,
// so nodes exactly on a wall face are not lost to rounding.
const boundaryTol = 1e-3

// CavityTouchNodes extracts the candidate cavity-wall node cloud from a
// brick mesh: every vertex inside the cavity rectangle whose height
// lies within the stud engagement zone. The result is the mesh-sample
// input of the interference solver; node ids are 1-based vertex labels.
// Base plates and tiles have no engaging cavity wall and yield nil.
func CavityTouchNodes(m *kernel.Mesh, g brick.Geometry, a brick.Archetype, meshSize float64) []interference.Node {
	if a.Category == brick.CategoryBasePlate || a.Category == brick.CategoryTile {
		return nil
	}

	innerMin := -g.Pitch/2 + g.Gap + g.Wall
	innerMaxX := float64(a.NX-1)*g.Pitch + g.Pitch/2 - g.Gap - g.Wall
	innerMaxZ := float64(a.NZ-1)*g.Pitch + g.Pitch/2 - g.Gap - g.Wall
	yMax := g.StudHeight + meshSize/2

	var nodes []interference.Node
	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.Vertex(i)
		if y <= boundaryTol || y > yMax+boundaryTol {
			continue
		}
		if x < innerMin-boundaryTol || x > innerMaxX+boundaryTol ||
			z < innerMin-boundaryTol || z > innerMaxZ+boundaryTol {
			continue
		}
		nodes = append(nodes, interference.Node{ID: i + 1, X: x, Y: y, Z: z})
	}
	return nodes
}
