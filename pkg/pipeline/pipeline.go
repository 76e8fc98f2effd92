// Package pipeline runs the full assembly analysis end to end: lattice
// placement, topology aggregation, per-part meshing through a geometry
// kernel, and the interference records for every seated part. One mesh
// and one record list are produced per part.
package pipeline

import (
	"fmt"

	"github.com/bricklab/studwork/pkg/brick"
	"github.com/bricklab/studwork/pkg/interference"
	"github.com/bricklab/studwork/pkg/kernel"
	"github.com/bricklab/studwork/pkg/solid"
	"github.com/bricklab/studwork/pkg/topology"
)

// Result bundles every artifact of one analysis run, keyed by part id
// where the artifact is per-part.
type Result struct {
	Parts    []brick.PlacedPart            `json:"parts"`
	Topology topology.Topology             `json:"topology"`
	Meshes   map[int]*kernel.Mesh          `json:"meshes"`
	Records  map[int][]interference.Record `json:"records"`
	Findings []brick.Finding               `json:"findings,omitempty"` // advisory only
}

// Run analyzes an assembly with the given geometry kernel. Validation
// errors abort the run; warnings are carried through in the result.
func Run(asm *brick.Assembly, k kernel.Kernel) (*Result, error) {
	v := brick.Validate(asm)
	if !v.OK() {
		return nil, fmt.Errorf("pipeline: invalid assembly: %w", v.Errors[0])
	}

	parts, err := brick.PlaceAll(asm)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	top := topology.Build(parts, topology.NewClassifier(asm.Geometry))

	builder := solid.NewBuilder(k, asm.Geometry)
	res := &Result{
		Parts:    parts,
		Topology: top,
		Meshes:   make(map[int]*kernel.Mesh, len(parts)),
		Records:  make(map[int][]interference.Record, len(parts)),
		Findings: v.Warnings,
	}

	for _, p := range parts {
		widen := top.Widen[p.ID]
		m, err := builder.Mesh(p.Archetype, widen)
		if err != nil {
			return nil, fmt.Errorf("pipeline: part %d: %w", p.ID, err)
		}
		res.Meshes[p.ID] = m

		if len(widen) == 0 {
			continue
		}
		nodes := solid.CavityTouchNodes(m, asm.Geometry, p.Archetype, asm.MeshSize)
		studs := interference.StudCenters(widen, asm.Geometry.Pitch)
		res.Records[p.ID] = interference.Solve(
			nodes, studs, asm.Geometry.StudRadius(), asm.Geometry.StudHeight, asm.MeshSize)
	}
	return res, nil
}
