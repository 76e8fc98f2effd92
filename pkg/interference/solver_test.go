package interference

import (
	"math"
	"testing"

	"github.com/bricklab/studwork/pkg/brick"
)

const (
	rStud    = 2.35
	hStud    = 1.7
	meshSize = 0.75
)

func TestStudCenters(t *testing.T) {
	coords := []brick.GridCoord{{IX: 0, IZ: 0}, {IX: 1, IZ: 0}, {IX: 0, IZ: 2}}
	studs := StudCenters(coords, 8.0)
	want := []Stud{{0, 0}, {8, 0}, {0, 16}}
	for i := range want {
		if studs[i] != want[i] {
			t.Errorf("stud %d = %v, want %v", i, studs[i], want[i])
		}
	}
}

func TestSolveSelectsOnlyPenetratingNodes(t *testing.T) {
	nodes := []Node{
		{ID: 1, X: 2.0, Y: 1.0, Z: 0},  // inside radius, inside zone
		{ID: 2, X: 2.4, Y: 1.0, Z: 0},  // outside radius
		{ID: 3, X: 2.0, Y: 3.0, Z: 0},  // inside radius, above zone
		{ID: 4, X: rStud, Y: 1.0, Z: 0}, // exactly on the surface
	}
	recs := Solve(nodes, []Stud{{0, 0}}, rStud, hStud, meshSize)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(recs), recs)
	}
	if recs[0].NodeID != 1 {
		t.Errorf("record node = %d, want 1", recs[0].NodeID)
	}
	if got, want := recs[0].RadialCorrection, rStud-2.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("radial correction = %f, want %f", got, want)
	}
}

func TestSolveAxialZoneBoundary(t *testing.T) {
	// The engagement zone extends half a mesh cell above the stud top.
	top := hStud + meshSize/2
	nodes := []Node{
		{ID: 1, X: 1.0, Y: top, Z: 0},
		{ID: 2, X: 1.0, Y: top + 1e-9, Z: 0},
	}
	recs := Solve(nodes, []Stud{{0, 0}}, rStud, hStud, meshSize)
	if len(recs) != 1 || recs[0].NodeID != 1 {
		t.Errorf("got %+v, want only node 1", recs)
	}
}

func TestSolveAngles(t *testing.T) {
	cases := []struct {
		name string
		x, z float64
		deg  float64
	}{
		{"posX", 1, 0, 0},
		{"posZ", 0, 1, 90},
		{"negX", -1, 0, -180},
		{"negZ", 0, -1, -90},
		{"diag", 1, 1, 45},
	}
	for _, tc := range cases {
		recs := Solve([]Node{{ID: 1, X: tc.x, Y: 0.5, Z: tc.z}}, []Stud{{0, 0}}, rStud, hStud, meshSize)
		if len(recs) != 1 {
			t.Fatalf("%s: got %d records, want 1", tc.name, len(recs))
		}
		if math.Abs(recs[0].AngleDeg-tc.deg) > 1e-9 {
			t.Errorf("%s: angle = %f, want %f", tc.name, recs[0].AngleDeg, tc.deg)
		}
	}
}

func TestSolveProperties(t *testing.T) {
	// A ring of nodes at varying radii and heights around two studs.
	var nodes []Node
	id := 1
	for i := 0; i < 24; i++ {
		theta := float64(i) * math.Pi / 12
		r := 0.5 + float64(i%4)*0.7
		nodes = append(nodes, Node{
			ID: id,
			X:  r * math.Cos(theta),
			Y:  float64(i%3) * 0.9,
			Z:  r * math.Sin(theta),
		})
		id++
	}
	studs := []Stud{{0, 0}, {8, 0}}
	recs := Solve(nodes, studs, rStud, hStud, meshSize)
	if len(recs) == 0 {
		t.Fatal("expected records")
	}
	for _, r := range recs {
		if r.RadialCorrection <= 0 {
			t.Errorf("node %d: radial correction %f must be positive", r.NodeID, r.RadialCorrection)
		}
		if r.AngleDeg < -180 || r.AngleDeg >= 180 {
			t.Errorf("node %d: angle %f out of [-180, 180)", r.NodeID, r.AngleDeg)
		}
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].NodeID < recs[i-1].NodeID {
			t.Errorf("records not sorted by node id: %d before %d", recs[i-1].NodeID, recs[i].NodeID)
		}
	}
}

func TestSolveEmptyInputs(t *testing.T) {
	if recs := Solve(nil, []Stud{{0, 0}}, rStud, hStud, meshSize); len(recs) != 0 {
		t.Errorf("no nodes should yield no records, got %+v", recs)
	}
	if recs := Solve([]Node{{ID: 1, X: 1, Y: 0.5}}, nil, rStud, hStud, meshSize); len(recs) != 0 {
		t.Errorf("no studs should yield no records, got %+v", recs)
	}
}

func TestRecordGroupName(t *testing.T) {
	r := Record{NodeID: 42}
	if got := r.GroupName(); got != "x-n42" {
		t.Errorf("group name = %q, want x-n42", got)
	}
	names := GroupNames([]Record{{NodeID: 1}, {NodeID: 7}})
	if names[0] != "x-n1" || names[1] != "x-n7" {
		t.Errorf("group names = %v", names)
	}
}

func TestRecordDisplacement(t *testing.T) {
	// At 90 degrees the pull is along +z in the sampling frame, which
	// the consumer frame sees as -z.
	r := Record{NodeID: 1, RadialCorrection: 0.35, AngleDeg: 90}
	dx, dz := r.Displacement()
	if math.Abs(dx) > 1e-12 {
		t.Errorf("dx = %f, want 0", dx)
	}
	if math.Abs(dz+0.35) > 1e-12 {
		t.Errorf("dz = %f, want -0.35", dz)
	}
}
