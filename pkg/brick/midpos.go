package brick

// MidPositions returns the interior midpoints between consecutive stud
// rows along one axis, in mm relative to the first stud center. An axis
// with a single stud row has no interior midpoints; callers must treat
// the empty result as the expected degenerate branch, not an error.
func MidPositions(n int, pitch float64) []float64 {
	if n < 2 {
		return nil
	}
	mids := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		mids[i] = pitch*float64(i) + pitch/2
	}
	return mids
}

// MidGrid returns the interior midpoints of an archetype footprint along
// both axes. For a 1x1 footprint both slices are empty; for a 1xn
// footprint only the populated axis yields midpoints.
func MidGrid(a Archetype, pitch float64) (xMids, zMids []float64) {
	return MidPositions(a.NX, pitch), MidPositions(a.NZ, pitch)
}
