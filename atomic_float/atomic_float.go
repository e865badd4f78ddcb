// atomic_float provides a lock-free float64 for low-rate telemetry counters
// shared between the simulation goroutine and http handlers. The trick is the
// usual one: reinterpret the float's bits as a uint64 and lean on the uint64
// atomics. Mind the unsafe-pointer guidelines: never hold the converted
// pointer beyond the call that uses it.
package atomic_float

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AtomicFloat64 wraps a float64 whose reads and updates are atomic.
type AtomicFloat64 struct {
	val float64
}

func NewAtomicFloat64(val float64) *AtomicFloat64 {
	return &AtomicFloat64{val: val}
}

// Read returns the current value, synchronized with main memory.
func (af *AtomicFloat64) Read() float64 {
	bits := atomic.LoadUint64((*uint64)(unsafe.Pointer(&af.val)))
	return math.Float64frombits(bits)
}

// Add attempts a single compare-and-swap of val+addend. A false return means
// the value changed underneath the caller, who decides whether to retry or
// drop the update; unconditional retry loops hide exactly the contention the
// caller may care about.
func (af *AtomicFloat64) Add(addend float64) (newVal float64, succeeded bool) {
	old := af.Read()
	newVal = old + addend
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return
}

// MustAdd retries Add until it lands. Appropriate for counters with a single
// known writer or where lost-update retries are cheap and benign.
func (af *AtomicFloat64) MustAdd(addend float64) (newVal float64) {
	for {
		var ok bool
		if newVal, ok = af.Add(addend); ok {
			return
		}
	}
}

// Set attempts a single compare-and-swap to the new value.
func (af *AtomicFloat64) Set(val float64) (succeeded bool) {
	old := af.Read()
	return atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(val))
}
