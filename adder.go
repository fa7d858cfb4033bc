package striped

import "fmt"

// Adder is a striped sum of T values.
//
// It should be preferred over a single atomically updated word when many
// goroutines add concurrently and the total is read comparatively rarely,
// as with statistics counters. Under low contention it costs about the
// same as one atomic word; under high contention it trades memory for
// throughput.
//
// The zero value is an Adder holding zero, ready to use. An Adder must
// not be copied after first use.
//
// Get does not observe a consistent total when it runs concurrently
// with Add. For example, suppose goroutine G1 runs
//
//	a.Add(1)
//	a.Add(2)
//
// and, concurrently, G2 runs
//
//	t0 := a.GetThenReset()
//	// wait for G1 to finish
//	t1 := a.Get()
//
// The value of t0 may be any of 0, 1, 2, or 3, and so may t1.
// However, t0+t1 is always 3.
//
// For floating point T the order in which contributions are summed is
// unspecified, so the result may differ in the last bits from a
// sequential sum.
type Adder[T Number] struct {
	_ noCopy
	s striped[T]
}

// NewAdder creates an Adder holding zero.
//
// Parameters:
//   - WithMaxCells option to cap the cell table
func NewAdder[T Number](options ...func(*Config)) *Adder[T] {
	a := &Adder[T]{}
	a.s.init(newConfig(options), 0)
	return a
}

// Add adds x to the sum.
func (a *Adder[T]) Add(x T) {
	a.s.update(x, add[T], 0)
}

// Update adds x to the sum. It is the same as Add.
func (a *Adder[T]) Update(x T) {
	a.s.update(x, add[T], 0)
}

// Inc increments the sum by 1.
func (a *Adder[T]) Inc() {
	a.s.update(1, add[T], 0)
}

// Dec decrements the sum by 1. For unsigned T it wraps around, like the
// underlying integer arithmetic.
func (a *Adder[T]) Dec() {
	var one T = 1
	a.s.update(-one, add[T], 0)
}

// Get returns the current sum.
// The returned value may not include all of the latest operations in
// presence of concurrent modifications of the Adder.
func (a *Adder[T]) Get() T {
	return a.s.fold(add[T])
}

// Sum is the same as Get.
func (a *Adder[T]) Sum() T {
	return a.s.fold(add[T])
}

// Reset sets the sum to zero. The cell table keeps its size.
//
// Reset is not atomic: Add calls running concurrently with it may be
// partially or entirely lost. Use it only when no other goroutine is
// updating the Adder, or use GetThenReset.
func (a *Adder[T]) Reset() {
	a.s.reset(0)
}

// GetThenReset sets the sum to zero and returns the value it held.
//
// With no concurrent updates it returns exactly what Get would have.
// Concurrent Add calls are reflected either in the returned value or in
// the Adder afterwards, never in both; the returned value is therefore
// not a snapshot of any single instant.
func (a *Adder[T]) GetThenReset() T {
	return a.s.foldAndReset(add[T], 0)
}

// String returns the decimal form of Get.
func (a *Adder[T]) String() string {
	return fmt.Sprint(a.Get())
}
