package stats

// ClipOutliers clips a column to its lower and upper percentile values and
// returns a new slice.
func ClipOutliers(col []float64, lower, upper float64) []float64 {
	lo := Percentile(col, lower)
	hi := Percentile(col, upper)
	out := make([]float64, len(col))
	for i, v := range col {
		switch {
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out
}
