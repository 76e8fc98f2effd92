// Package interference computes the radial pull-back field that removes
// the initial geometric penetration between an oversized stud cylinder
// and the cavity-wall mesh nodes it seats into. The output records are
// terminal artifacts handed to an external boundary-condition component.
package interference

import (
	"math"
	"sort"
	"strconv"

	"github.com/bricklab/studwork/pkg/brick"
)

// Node is one candidate mesh node sampled from a cavity-touch region,
// in the frame where the stud lattice origin is at (0, 0) and y measures
// height above the cavity opening.
type Node struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// Stud is the planar center of one analytic stud cylinder.
type Stud struct {
	X0 float64 `json:"x0"`
	Z0 float64 `json:"z0"`
}

// StudCenters derives the stud cylinder centers from a neighbor's local
// stud coordinates at the given lattice pitch.
func StudCenters(coords []brick.GridCoord, pitch float64) []Stud {
	studs := make([]Stud, len(coords))
	for i, c := range coords {
		studs[i] = Stud{X0: pitch * float64(c.IX), Z0: pitch * float64(c.IZ)}
	}
	return studs
}

// Record is the radial correction for one overlapping node. The value
// is the pull-back distance rStud - d > 0: the node must move radially
// outward from the stud axis by that amount to clear the stud surface.
type Record struct {
	NodeID           int     `json:"node_id"`
	RadialCorrection float64 `json:"radial_correction"`
	AngleDeg         float64 `json:"angle_deg"` // in [-180, 180)
}

// GroupName returns the node-group identifier downstream boundary
// conditions address, one group per record.
func (r Record) GroupName() string {
	return "x-n" + strconv.Itoa(r.NodeID)
}

// Displacement converts the radial correction into the Cartesian
// displacement applied in the cavity frame. The z component is negated:
// the sampling frame's z axis is mirrored relative to the frame the
// boundary-condition consumer works in.
func (r Record) Displacement() (dx, dz float64) {
	rad := r.AngleDeg * math.Pi / 180
	return r.RadialCorrection * math.Cos(rad), -r.RadialCorrection * math.Sin(rad)
}

// Solve selects every node that starts inside a stud cylinder's radius
// within its axial engagement zone and computes its radial correction
// and angular position. Per-node and per-stud evaluations are
// independent; the final stable sort on node id re-imposes the order
// downstream naming depends on. An empty result is a valid outcome.
func Solve(nodes []Node, studs []Stud, rStud, hStud, meshSize float64) []Record {
	var recs []Record
	for _, s := range studs {
		recs = append(recs, overlapNodes(nodes, s, rStud, hStud, meshSize)...)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].NodeID < recs[j].NodeID })
	return recs
}

// overlapNodes evaluates all candidate nodes against a single stud.
func overlapNodes(nodes []Node, s Stud, rStud, hStud, meshSize float64) []Record {
	var recs []Record
	for _, n := range nodes {
		dx, dz := n.X-s.X0, n.Z-s.Z0
		d := math.Sqrt(dx*dx + dz*dz)
		if d >= rStud || n.Y > hStud+meshSize/2 {
			continue
		}
		deg := math.Atan2(dz, dx) * 180 / math.Pi
		if deg >= 180 {
			deg -= 360
		}
		recs = append(recs, Record{
			NodeID:           n.ID,
			RadialCorrection: rStud - d,
			AngleDeg:         deg,
		})
	}
	return recs
}

// GroupNames returns the node-group identifiers for a record list, in
// the same order.
func GroupNames(recs []Record) []string {
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.GroupName()
	}
	return names
}
