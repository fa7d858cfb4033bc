package striped

import (
	"sync"
	"unsafe"

	"github.com/llxisdsh/striped/internal/opt"
)

// pool for probe tokens
var probePool sync.Pool

// a probe token carries the hash used to pick a cell. Tokens live in a
// sync.Pool, so a goroutine usually gets the token last used on its P;
// exact identity of the P is not important, the token is only a best
// effort mechanism for spreading concurrent updates over the cells.
type probe struct {
	h uint32
	//lint:ignore U1000 prevents false sharing
	_ [(opt.CacheLineSize_ - unsafe.Sizeof(uint32(0))%opt.CacheLineSize_) % opt.CacheLineSize_ * opt.PaddingMult_]byte
}

// acquireProbe returns a token with a nonzero hash, creating and seeding
// one on first use.
func acquireProbe() *probe {
	p, ok := probePool.Get().(*probe)
	if !ok {
		p = &probe{h: seedProbe()}
	}
	return p
}

func releaseProbe(p *probe) {
	probePool.Put(p)
}

func seedProbe() uint32 {
	h := runtime_cheaprand()
	if h == 0 {
		h = 1
	}
	return h
}

// advanceProbe applies one xorshift step. A nonzero input never maps to
// zero.
//
//go:nosplit
func advanceProbe(h uint32) uint32 {
	h ^= h << 13
	h ^= h >> 17
	h ^= h << 5
	return h
}
