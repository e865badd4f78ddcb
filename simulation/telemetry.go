package simulation

import "neuroarena/atomic_float"

// Telemetry tracks run counters written by the simulation goroutine and read
// by http handlers; atomic floats keep the two sides free of locks.
type Telemetry struct {
	Steps        *atomic_float.AtomicFloat64
	Episodes     *atomic_float.AtomicFloat64
	Distance     *atomic_float.AtomicFloat64
	WallContacts *atomic_float.AtomicFloat64
}

func NewTelemetry() *Telemetry {
	return &Telemetry{
		Steps:        atomic_float.NewAtomicFloat64(0),
		Episodes:     atomic_float.NewAtomicFloat64(0),
		Distance:     atomic_float.NewAtomicFloat64(0),
		WallContacts: atomic_float.NewAtomicFloat64(0),
	}
}

// Counters returns a point-in-time reading, keyed for JSON serving.
func (t *Telemetry) Counters() map[string]float64 {
	return map[string]float64{
		"steps":        t.Steps.Read(),
		"episodes":     t.Episodes.Read(),
		"distance":     t.Distance.Read(),
		"wallContacts": t.WallContacts.Read(),
	}
}
