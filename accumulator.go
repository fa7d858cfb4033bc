package striped

import "fmt"

// Accumulator maintains a running value of T updated with a caller
// supplied operator, for example max, min or bitwise or.
//
// The operator must be associative and commutative and free of side
// effects: contributions from different goroutines are combined in an
// unspecified order, and an update may evaluate the operator more than
// once when it loses a race. For floating point operators exact
// bit-reproducibility between runs is not guaranteed.
//
// Compare-and-swap on the stored values uses their raw bits, so operators
// that produce NaN or negative zero are handled without livelock.
//
// Like Adder, reads are snapshots and are not atomic with respect to
// concurrent updates.
//
// An Accumulator must not be copied after first use.
type Accumulator[T Number] struct {
	_        noCopy
	s        striped[T]
	op       func(T, T) T
	identity T
}

// NewAccumulator creates an Accumulator that combines values with op,
// starting from identity. identity must satisfy op(identity, x) == x for
// every x, e.g. math.MinInt64 for max over int64.
//
// It panics with ErrNilCombine if op is nil.
//
// Parameters:
//   - WithMaxCells option to cap the cell table
func NewAccumulator[T Number](op func(x, y T) T, identity T, options ...func(*Config)) *Accumulator[T] {
	if op == nil {
		panic(ErrNilCombine)
	}
	a := &Accumulator[T]{
		op:       op,
		identity: identity,
	}
	a.s.init(newConfig(options), identity)
	return a
}

// Update folds x into the current value.
func (a *Accumulator[T]) Update(x T) {
	a.s.update(x, a.op, a.identity)
}

// Get returns the current value: the operator applied across the base
// and every cell, in an unspecified order.
// The returned value may not include all of the latest operations in
// presence of concurrent modifications of the Accumulator.
func (a *Accumulator[T]) Get() T {
	return a.s.fold(a.op)
}

// Reset sets the current value back to the identity. The cell table
// keeps its size.
//
// Reset is not atomic: updates running concurrently with it may be
// lost. Use it only when no other goroutine is updating the Accumulator.
func (a *Accumulator[T]) Reset() {
	a.s.reset(a.identity)
}

// GetThenReset returns the current value and resets the Accumulator to
// the identity.
//
// With no concurrent updates the result equals the preceding Get. Under
// concurrent updates it is a best-effort value, suitable for periodic
// draining of metrics.
func (a *Accumulator[T]) GetThenReset() T {
	return a.s.foldAndReset(a.op, a.identity)
}

// Identity returns the identity value the Accumulator was created with.
func (a *Accumulator[T]) Identity() T {
	return a.identity
}

// String returns the default format of Get.
func (a *Accumulator[T]) String() string {
	return fmt.Sprint(a.Get())
}
