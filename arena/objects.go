package arena

import "math/rand"

// ObjectTable maps each discrete state index to a one-hot sensory vector.
// One row per state, nObjects columns, exactly one entry set to 1.
type ObjectTable [][]float64

// GenerateObjects draws a fresh object landscape: for each of nStates states,
// an object identity is sampled uniformly from [0, nObjects), independently
// per state. Identities may repeat across states and some objects may never
// appear; both are intentional. No caching: callers re-randomize the
// landscape by calling this again, typically once per episode reset.
func GenerateObjects(rng *rand.Rand, nStates, nObjects int) ObjectTable {
	table := make(ObjectTable, nStates)
	for i := range table {
		row := make([]float64, nObjects)
		row[rng.Intn(nObjects)] = 1
		table[i] = row
	}
	return table
}

// ObjectID returns the identity encoded by a one-hot row, or -1 if the row
// is empty or not one-hot.
func ObjectID(row []float64) int {
	for j, v := range row {
		if v == 1 {
			return j
		}
	}
	return -1
}
