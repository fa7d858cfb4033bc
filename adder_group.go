package striped

import (
	"github.com/llxisdsh/pb"
)

// AdderGroup keeps one Adder per key, created on first use.
// It is meant for families of counters (per endpoint, per status code,
// per tenant) that are updated on hot paths and exported periodically
// with Drain.
//
// Usage:
//
//	var hits AdderGroup[string, int64]
//	hits.Inc("/index")
//	hits.Drain(func(path string, n int64) bool {
//		export(path, n)
//		return true
//	})
//
// The zero value is ready to use. An AdderGroup must not be copied after
// first use.
type AdderGroup[K comparable, T Number] struct {
	_       noCopy
	m       pb.MapOf[K, *Adder[T]]
	options []func(*Config)
}

// NewAdderGroup creates an AdderGroup whose adders are built with options.
func NewAdderGroup[K comparable, T Number](options ...func(*Config)) *AdderGroup[K, T] {
	return &AdderGroup[K, T]{options: options}
}

func (g *AdderGroup[K, T]) adder(k K) *Adder[T] {
	if a, ok := g.m.Load(k); ok {
		return a
	}
	a, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *Adder[T]]) (*pb.EntryOf[K, *Adder[T]], *Adder[T], bool) {
			if l != nil {
				return l, l.Value, true
			}
			a := NewAdder[T](g.options...)
			return &pb.EntryOf[K, *Adder[T]]{Value: a}, a, false
		},
	)
	return a
}

// Add adds x to the adder of k.
func (g *AdderGroup[K, T]) Add(k K, x T) {
	g.adder(k).Add(x)
}

// Inc increments the adder of k by 1.
func (g *AdderGroup[K, T]) Inc(k K) {
	g.adder(k).Inc()
}

// Get returns the sum held for k, and whether k is present.
func (g *AdderGroup[K, T]) Get(k K) (T, bool) {
	a, ok := g.m.Load(k)
	if !ok {
		return 0, false
	}
	return a.Get(), true
}

// GetThenReset returns the sum held for k and resets it to zero. The key
// stays in the group.
func (g *AdderGroup[K, T]) GetThenReset(k K) (T, bool) {
	a, ok := g.m.Load(k)
	if !ok {
		return 0, false
	}
	return a.GetThenReset(), true
}

// Delete removes k. Adds racing with Delete may be lost along with the
// removed adder.
func (g *AdderGroup[K, T]) Delete(k K) {
	g.m.Delete(k)
}

// Len returns the number of keys in the group.
func (g *AdderGroup[K, T]) Len() int {
	return g.m.Size()
}

// Range calls f with each key and its current sum until f returns false.
// Keys added during the iteration may or may not be visited.
func (g *AdderGroup[K, T]) Range(f func(k K, v T) bool) {
	g.m.Range(func(k K, a *Adder[T]) bool {
		return f(k, a.Get())
	})
}

// Drain is Range with GetThenReset: every key's sum is handed to f and
// reset to zero. Keys not yet visited when f returns false are left
// untouched.
func (g *AdderGroup[K, T]) Drain(f func(k K, v T) bool) {
	g.m.Range(func(k K, a *Adder[T]) bool {
		return f(k, a.GetThenReset())
	})
}
