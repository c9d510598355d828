package series

// Compose multiplies every recorded value by fn evaluated at the absolute end
// time of its segment. Durations are left unchanged and the result isn't
// clamped.
func Compose(ts *TimeSerie, fn func(t float64) float64) {
	absTime := ts.startTime
	for i := range ts.durations {
		absTime += ts.durations[i]
		ts.values[i] = ts.values[i] * fn(absTime)
	}
}
