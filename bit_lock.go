package striped

import "sync/atomic"

// busyBit marks table initialization, cell installation and resize.
const busyBit uint32 = 1

// tryLockUint32 attempts to set the bits of mask in *addr without
// waiting. It fails if any of them is already set; other bits are
// preserved.
//
//go:nosplit
func tryLockUint32(addr *uint32, mask uint32) bool {
	for {
		cur := atomic.LoadUint32(addr)
		if cur&mask != 0 {
			return false
		}
		if atomic.CompareAndSwapUint32(addr, cur, cur|mask) {
			return true
		}
	}
}

// unlockUint32 clears the bits of mask. It must only be called by the
// holder of the bit lock.
//
//go:nosplit
func unlockUint32(addr *uint32, mask uint32) {
	for {
		cur := atomic.LoadUint32(addr)
		if atomic.CompareAndSwapUint32(addr, cur, cur&^mask) {
			return
		}
	}
}
