package pipeline

import (
	"testing"

	"github.com/bricklab/studwork/pkg/brick"
	"github.com/bricklab/studwork/pkg/kernel"
)

// boxSolid is a minimal kernel.Solid carrying only a bounding box.
type boxSolid struct {
	min, max [3]float64
}

func (s *boxSolid) BoundingBox() (min, max [3]float64) { return s.min, s.max }

// stubKernel produces a fixed cavity-wall vertex for every solid, so
// the interference stage has one candidate node to work with.
type stubKernel struct{}

var _ kernel.Kernel = stubKernel{}

func (stubKernel) Box(x, y, z float64) kernel.Solid {
	return &boxSolid{max: [3]float64{x, y, z}}
}
func (stubKernel) Cylinder(h, r float64) kernel.Solid {
	return &boxSolid{min: [3]float64{-r, 0, -r}, max: [3]float64{r, h, r}}
}
func (stubKernel) Union(a, b kernel.Solid) kernel.Solid      { return a }
func (stubKernel) Difference(a, b kernel.Solid) kernel.Solid { return a }
func (stubKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return s
}
func (stubKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	// One vertex just inside a stud seat at the lattice origin.
	return &kernel.Mesh{Vertices: []float64{2.0, 1.0, 0.0}}, nil
}

func stackAssembly() *brick.Assembly {
	asm := brick.NewAssembly("stack")
	asm.MeshSize = 0.75
	asm.Archetypes[1] = brick.Archetype{Category: brick.CategoryRegular, NX: 2, NZ: 2}
	asm.Placements[1] = brick.Placement{ArchetypeID: 1}
	asm.Placements[2] = brick.Placement{ArchetypeID: 1, Origin: brick.Vec3{Y: 9.6}}
	return asm
}

func TestRunStack(t *testing.T) {
	res, err := Run(stackAssembly(), stubKernel{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(res.Parts))
	}
	if len(res.Meshes) != 2 {
		t.Errorf("got %d meshes, want 2", len(res.Meshes))
	}
	if len(res.Topology.Widen[2]) != 4 {
		t.Errorf("widen[2] = %v, want 4 seats", res.Topology.Widen[2])
	}

	// Only the seated part gets interference records.
	if len(res.Records[1]) != 0 {
		t.Errorf("part 1 records = %v, want none", res.Records[1])
	}
	recs := res.Records[2]
	if len(recs) == 0 {
		t.Fatal("part 2 should have interference records")
	}
	for _, r := range recs {
		if r.RadialCorrection <= 0 {
			t.Errorf("radial correction %f must be positive", r.RadialCorrection)
		}
	}
}

func TestRunRejectsInvalidAssembly(t *testing.T) {
	asm := brick.NewAssembly("bad")
	asm.Placements[1] = brick.Placement{ArchetypeID: 7}

	if _, err := Run(asm, stubKernel{}); err == nil {
		t.Fatal("expected error for unknown archetype")
	}
}

func TestRunCarriesWarnings(t *testing.T) {
	asm := stackAssembly()
	asm.Archetypes[2] = brick.Archetype{Category: brick.CategoryRegular, NX: 4, NZ: 1}

	res, err := Run(asm, stubKernel{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Findings) != 1 {
		t.Errorf("findings = %v, want the single-row warning", res.Findings)
	}
}
