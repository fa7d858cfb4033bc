package striped

import (
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/striped/internal/opt"
)

// cell is one contended slot of a striped table. It is padded out to a
// cache line so that cells updated from different Ps do not share one.
type cell struct {
	v atomic.Uint64
	_ [(opt.CacheLineSize_ - unsafe.Sizeof(struct {
		v uint64
	}{})%opt.CacheLineSize_) % opt.CacheLineSize_ * opt.PaddingMult_]byte
}

func newCell(bits uint64) *cell {
	c := &cell{}
	c.v.Store(bits)
	return c
}

//go:nosplit
func (c *cell) load() uint64 {
	return c.v.Load()
}

// tryUpdate makes a single CAS attempt. Callers own retry and fallback.
//
//go:nosplit
func (c *cell) tryUpdate(expected, bits uint64) bool {
	return c.v.CompareAndSwap(expected, bits)
}

// forceReset overwrites the slot. Concurrent updates racing it may be lost.
//
//go:nosplit
func (c *cell) forceReset(identity uint64) {
	c.v.Store(identity)
}

//go:nosplit
func (c *cell) swap(bits uint64) uint64 {
	return c.v.Swap(bits)
}
