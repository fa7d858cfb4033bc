package striped

import (
	"testing"
	"unsafe"

	"github.com/llxisdsh/striped/internal/opt"
)

func TestCellSize(t *testing.T) {
	size := unsafe.Sizeof(cell{})
	if opt.PaddingMult_ == 1 && size != opt.CacheLineSize_ {
		t.Errorf("cell size = %d, want %d", size, opt.CacheLineSize_)
	}
	if opt.PaddingMult_ == 0 && size != 8 {
		t.Errorf("cell size = %d, want 8", size)
	}
}

func TestCell(t *testing.T) {
	c := newCell(toBits(int64(5)))
	eq(t, toBits(int64(5)), c.load())

	if c.tryUpdate(toBits(int64(4)), toBits(int64(9))) {
		t.Fatal("CAS succeeded with a stale expected value")
	}
	eq(t, int64(5), fromBits[int64](c.load()))

	if !c.tryUpdate(toBits(int64(5)), toBits(int64(9))) {
		t.Fatal("CAS failed with the current value")
	}
	eq(t, int64(9), fromBits[int64](c.load()))

	eq(t, int64(9), fromBits[int64](c.swap(toBits(int64(1)))))
	c.forceReset(0)
	eq(t, uint64(0), c.load())
}
