package topology

import (
	"fmt"

	"github.com/bricklab/studwork/pkg/brick"
)

// DefaultTol is the tolerance for extent and equality comparisons.
// Boundary classification between Bottom and Side is sensitive to it,
// so it is a tunable field of the Classifier rather than a constant
// baked into the comparisons.
const DefaultTol = 1e-3

// RelationKind is the spatial relation of part A to part B.
type RelationKind int

const (
	// RelationNone: the parts do not touch.
	RelationNone RelationKind = iota
	// RelationTop: B rests on A's studs.
	RelationTop
	// RelationBottom: A rests on B's studs; A's cavities may be widened.
	RelationBottom
	// RelationSide: the bodies overlap vertically and may touch laterally.
	RelationSide
)

func (k RelationKind) String() string {
	switch k {
	case RelationNone:
		return "none"
	case RelationTop:
		return "top"
	case RelationBottom:
		return "bottom"
	case RelationSide:
		return "side"
	default:
		return fmt.Sprintf("RelationKind(%d)", int(k))
	}
}

// SurfaceLabel names a contact surface of a brick.
type SurfaceLabel string

const (
	SurfaceX0  SurfaceLabel = "x0" // face at minimum x
	SurfaceX1  SurfaceLabel = "x1" // face at maximum x
	SurfaceZ0  SurfaceLabel = "z0" // face at minimum z
	SurfaceZ1  SurfaceLabel = "z1" // face at maximum z
	SurfaceBot SurfaceLabel = "bot"
	SurfaceTop SurfaceLabel = "top"
)

// SurfacePair names the two mating surfaces of a contact interaction,
// in (A, B) order of the classified pair.
type SurfacePair struct {
	A SurfaceLabel `json:"a"`
	B SurfaceLabel `json:"b"`
}

// RelationResult is the classification of one ordered part pair (A, B).
type RelationResult struct {
	Kind         RelationKind      `json:"kind"`
	GridOverlap  []brick.GridCoord `json:"grid_overlap,omitempty"`
	SurfacePairs []SurfacePair     `json:"surface_pairs,omitempty"`
	StudContact  bool              `json:"stud_contact,omitempty"`
}

// Classifier decides pairwise relations from vertical extents and
// lattice coordinates. It is stateless and safe for concurrent use.
type Classifier struct {
	Tol        float64
	StudHeight float64
}

// NewClassifier returns a classifier with the default tolerance and the
// stud height taken from the geometry.
func NewClassifier(g brick.Geometry) Classifier {
	return Classifier{Tol: DefaultTol, StudHeight: g.StudHeight}
}

// Classify returns the relation of a to b. A self-pair is RelationNone
// with empty lists. Exactly one vertical branch fires; the branch order
// is the tie-break, so a configuration on the tolerance boundary between
// Bottom and Side resolves as Bottom.
func (c Classifier) Classify(a, b brick.PlacedPart) RelationResult {
	if a.ID == b.ID {
		return RelationResult{Kind: RelationNone}
	}

	ea, eb := a.Extent, b.Extent
	var kind RelationKind
	switch {
	case ea.YMax+c.StudHeight > eb.YMin && ea.YMax <= eb.YMin+c.Tol:
		kind = RelationTop
	case eb.YMax+c.StudHeight > ea.YMin && eb.YMax <= ea.YMin+c.Tol:
		kind = RelationBottom
	case (ea.YMin < eb.YMax+c.Tol && eb.YMax+c.Tol <= ea.YMax+c.Tol) ||
		(eb.YMin < ea.YMax+c.Tol && ea.YMax+c.Tol <= eb.YMax+c.Tol):
		kind = RelationSide
	default:
		kind = RelationNone
	}

	res := RelationResult{Kind: kind}
	switch kind {
	case RelationBottom:
		// Absolute lattice matches mark cavity positions of A that a
		// stud of B seats into, reported in A's local frame.
		for _, sa := range a.Studs {
			for _, sb := range b.Studs {
				if sa == sb {
					res.GridOverlap = append(res.GridOverlap, a.Local(sa))
				}
			}
		}
		res.StudContact = len(res.GridOverlap) > 0
	case RelationSide:
		// Only the positive-offset direction is emitted; the swapped
		// pair produces the complementary orientation, so one physical
		// interface never yields two contact declarations.
		for _, sa := range a.Studs {
			for _, sb := range b.Studs {
				switch sb.Sub(sa) {
				case brick.GridCoord{IX: 1, IZ: 0}:
					res.SurfacePairs = append(res.SurfacePairs, SurfacePair{A: SurfaceX1, B: SurfaceX0})
				case brick.GridCoord{IX: 0, IZ: 1}:
					res.SurfacePairs = append(res.SurfacePairs, SurfacePair{A: SurfaceZ1, B: SurfaceZ0})
				}
			}
		}
	}
	return res
}
