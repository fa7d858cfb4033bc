package opt

import (
	"testing"
	"unsafe"
)

func TestCacheLineSize(t *testing.T) {
	switch CacheLineSize_ {
	case 32, 64, 128, 256:
	default:
		t.Fatalf("CacheLineSize_=%d, want a power of two in [32, 256]", CacheLineSize_)
	}
}

func TestPaddingMult(t *testing.T) {
	if PaddingMult_ != 0 && PaddingMult_ != 1 {
		t.Fatalf("PaddingMult_=%d", PaddingMult_)
	}
	type slot struct {
		v uint64
		_ [(CacheLineSize_ - unsafe.Sizeof(uint64(0))%CacheLineSize_) % CacheLineSize_ * PaddingMult_]byte
	}
	size := unsafe.Sizeof(slot{})
	if PaddingMult_ == 1 && size != CacheLineSize_ {
		t.Fatalf("padded slot size=%d, want %d", size, CacheLineSize_)
	}
	if PaddingMult_ == 0 && size != 8 {
		t.Fatalf("unpadded slot size=%d, want 8", size)
	}
}
