package striped

import (
	"runtime"
	_ "unsafe" // for linkname
)

const (
	intSize = 32 << (^uint(0) >> 63) // 32 or 64
)

// defaultMaxCells bounds table growth: once the table reaches the number
// of Ps, more cells can no longer reduce contention.
var defaultMaxCells = nextPowOf2(max(runtime.GOMAXPROCS(0), 2))

// nextPowOf2 calculates the smallest power of 2 that is greater than or equal
// to n.
// Compatible with both 32-bit and 64-bit systems.
//
//go:nosplit
func nextPowOf2(n int) int {
	if n <= 0 {
		return 1
	}
	v := n - 1
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	if intSize == 64 {
		v |= v >> 32
	}
	return v + 1
}

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// trySpin burns a few cycles in place when the runtime considers spinning
// worthwhile (multicore, idle Ps, low spin count). It never parks.
func trySpin(spins *int) bool {
	if runtime_canSpin(*spins) {
		*spins++
		runtime_doSpin()
		return true
	}
	*spins = 0
	return false
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()

// nolint:all
//
//go:linkname runtime_cheaprand runtime.cheaprand
//goland:noinspection ALL
func runtime_cheaprand() uint32
