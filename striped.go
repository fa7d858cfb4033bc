// Package striped provides contention-adaptive accumulators.
//
// An accumulator starts as a single atomic word (the base). When updates
// from several goroutines collide on it, it switches to a table of
// cache-line padded cells, each goroutine updating the cell picked by its
// probe hash. Collisions on a cell re-randomize the probe and, while the
// table is smaller than the number of Ps, double the table. Reads fold the
// base with every cell.
//
// Reads are snapshots: they are not atomic with respect to concurrent
// updates, and Reset / GetThenReset are best effort under concurrent
// writers. They are meant for statistics and metrics, not for
// synchronization.
package striped

import (
	"sync/atomic"
)

// cellTable is an immutable-length array of lazily installed cells.
// Its length is always a power of two.
type cellTable struct {
	cells []atomic.Pointer[cell]
}

//go:nosplit
func (t *cellTable) slot(h uint32) *atomic.Pointer[cell] {
	return &t.cells[int(h)&(len(t.cells)-1)]
}

// striped is the engine shared by Adder and Accumulator.
// The combine function and the identity are supplied per call by the
// owner, so the engine carries no per-instance closures.
type striped[T Number] struct {
	base  atomic.Uint64
	table atomic.Pointer[cellTable]
	// busy guards table initialization, cell installation and resize.
	// It is only ever try-acquired: a goroutine that cannot take it goes
	// back to CAS on the base or on a cell.
	busy     uint32
	maxCells int
}

func (s *striped[T]) init(c Config, identity T) {
	s.maxCells = c.maxCells
	s.base.Store(toBits(identity))
}

func (s *striped[T]) capacity() int {
	if s.maxCells > 0 {
		return s.maxCells
	}
	return defaultMaxCells
}

//go:nosplit
func (s *striped[T]) tryLock() bool {
	return tryLockUint32(&s.busy, busyBit)
}

//go:nosplit
func (s *striped[T]) unlock() {
	unlockUint32(&s.busy, busyBit)
}

// update folds x into the accumulator: one CAS on the base while no table
// exists, otherwise one CAS on the probed cell; anything else goes to the
// slow path.
func (s *striped[T]) update(x T, fn func(T, T) T, identity T) {
	t := s.table.Load()
	if t == nil {
		v := s.base.Load()
		if s.base.CompareAndSwap(v, toBits(fn(fromBits[T](v), x))) {
			return
		}
		s.accumulate(nil, x, fn, identity, true)
		return
	}
	p := acquireProbe()
	uncontended := true
	if c := t.slot(p.h).Load(); c != nil {
		v := c.load()
		if c.tryUpdate(v, toBits(fn(fromBits[T](v), x))) {
			releaseProbe(p)
			return
		}
		uncontended = false
	}
	s.accumulate(p, x, fn, identity, uncontended)
}

// accumulate is the contended path of update.
//
// wasUncontended is false when the caller already lost a CAS on the cell
// selected by p; the first round then rehashes instead of retrying the
// same cell. p may be nil, in which case a token is acquired here.
func (s *striped[T]) accumulate(p *probe, x T, fn func(T, T) T, identity T, wasUncontended bool) {
	if p == nil {
		p = acquireProbe()
	}
	h := p.h
	// collide is set after a failed cell CAS; a second failure in a row
	// grows the table.
	collide := false
	var spins int
loop:
	for {
		if t := s.table.Load(); t != nil {
			n := len(t.cells)
			c := t.slot(h).Load()
			switch {
			case c == nil:
				if s.tryLock() {
					installed := s.installCell(h, toBits(fn(identity, x)))
					s.unlock()
					if installed {
						break loop
					}
					// The slot was filled, or the table replaced, while
					// we were acquiring the flag.
					continue
				}
				collide = false
			case !wasUncontended:
				wasUncontended = true
			default:
				if v := c.load(); c.tryUpdate(v, toBits(fn(fromBits[T](v), x))) {
					break loop
				}
				if n >= s.capacity() {
					collide = false
					trySpin(&spins)
				} else if s.table.Load() != t {
					collide = false
				} else if !collide {
					collide = true
				} else if s.tryLock() {
					if s.table.Load() == t {
						s.grow(t)
					}
					s.unlock()
					collide = false
					continue
				}
			}
			h = advanceProbe(h)
		} else if s.tryLock() {
			created := false
			if s.table.Load() == nil {
				s.initTable(h, toBits(fn(identity, x)))
				created = true
			}
			s.unlock()
			if created {
				break loop
			}
		} else if v := s.base.Load(); s.base.CompareAndSwap(v, toBits(fn(fromBits[T](v), x))) {
			break loop
		}
	}
	p.h = h
	releaseProbe(p)
}

// initTable publishes a two-cell table with the slot of h seeded.
// Must be called with the busy flag held.
func (s *striped[T]) initTable(h uint32, seed uint64) {
	t := &cellTable{cells: make([]atomic.Pointer[cell], 2)}
	t.slot(h).Store(newCell(seed))
	s.table.Store(t)
}

// installCell claims the empty slot of h in the current table.
// Must be called with the busy flag held.
func (s *striped[T]) installCell(h uint32, seed uint64) bool {
	t := s.table.Load()
	slot := t.slot(h)
	if slot.Load() != nil {
		return false
	}
	slot.Store(newCell(seed))
	return true
}

// grow replaces t with a table twice as long. Cells are shared with t at
// the same indices, so updates that land on t after the swap are kept.
// Must be called with the busy flag held.
func (s *striped[T]) grow(t *cellTable) {
	nt := &cellTable{cells: make([]atomic.Pointer[cell], len(t.cells)<<1)}
	for i := range t.cells {
		nt.cells[i].Store(t.cells[i].Load())
	}
	s.table.Store(nt)
}

// fold combines the base with every allocated cell, in index order.
func (s *striped[T]) fold(fn func(T, T) T) T {
	v := fromBits[T](s.base.Load())
	if t := s.table.Load(); t != nil {
		for i := range t.cells {
			if c := t.cells[i].Load(); c != nil {
				v = fn(v, fromBits[T](c.load()))
			}
		}
	}
	return v
}

// reset stores identity into the base and every cell. The table keeps its
// length.
func (s *striped[T]) reset(identity T) {
	bits := toBits(identity)
	s.base.Store(bits)
	if t := s.table.Load(); t != nil {
		for i := range t.cells {
			if c := t.cells[i].Load(); c != nil {
				c.forceReset(bits)
			}
		}
	}
}

// foldAndReset swaps identity into every slot and folds what was taken
// out. Each concurrent update lands either in the returned value or in
// the accumulator afterwards, never in both.
func (s *striped[T]) foldAndReset(fn func(T, T) T, identity T) T {
	bits := toBits(identity)
	v := fromBits[T](s.base.Swap(bits))
	if t := s.table.Load(); t != nil {
		for i := range t.cells {
			if c := t.cells[i].Load(); c != nil {
				v = fn(v, fromBits[T](c.swap(bits)))
			}
		}
	}
	return v
}
