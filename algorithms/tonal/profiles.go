package tonal

// Krumhansl-Schmuckler key profiles: empirically derived pitch-class weights
// for a major and a minor tonal center rooted at C. Rotations of these two
// vectors cover all 24 keys. Read-only reference data, never mutated.
var (
	majorProfile = [12]float64{
		6.35, 2.23, 3.48, 2.33, 4.38, 4.09,
		2.52, 5.19, 2.39, 3.66, 2.29, 2.88,
	}

	minorProfile = [12]float64{
		6.33, 2.68, 3.52, 5.38, 2.60, 3.53,
		2.54, 4.75, 3.98, 2.69, 3.34, 3.17,
	}
)
