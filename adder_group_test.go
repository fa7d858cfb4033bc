package striped

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestAdderGroup_Basic(t *testing.T) {
	var g AdderGroup[string, int64]

	if _, ok := g.Get("missing"); ok {
		t.Fatal("Get reported a missing key as present")
	}
	if _, ok := g.GetThenReset("missing"); ok {
		t.Fatal("GetThenReset reported a missing key as present")
	}

	g.Add("a", 5)
	g.Inc("a")
	g.Inc("b")
	eq(t, 2, g.Len())

	v, ok := g.Get("a")
	eq(t, true, ok)
	eq(t, int64(6), v)

	v, ok = g.GetThenReset("a")
	eq(t, true, ok)
	eq(t, int64(6), v)
	v, _ = g.Get("a")
	eq(t, int64(0), v)
	eq(t, 2, g.Len())

	g.Delete("b")
	eq(t, 1, g.Len())
	if _, ok := g.Get("b"); ok {
		t.Fatal("deleted key still present")
	}
}

func TestAdderGroup_RangeStopsEarly(t *testing.T) {
	g := NewAdderGroup[int, int64](WithMaxCells(2))
	for k := range 10 {
		g.Add(k, int64(k))
	}
	visited := 0
	g.Range(func(k int, v int64) bool {
		eq(t, int64(k), v)
		visited++
		return visited < 3
	})
	eq(t, 3, visited)
}

func TestAdderGroup_ConcurrentDrain(t *testing.T) {
	var g AdderGroup[string, int64]
	const keys = 16
	goroutines := max(runtime.NumCPU(), 4)
	perGoroutine := scaled(20_000)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := range goroutines {
		go func() {
			defer wg.Done()
			for j := range perGoroutine {
				g.Inc(fmt.Sprintf("k%d", (i+j)%keys))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	perKey := make(map[string]int64)
	drain := func() {
		g.Drain(func(k string, v int64) bool {
			perKey[k] += v
			return true
		})
	}
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
			drain()
			runtime.Gosched()
		}
	}
	drain()

	var total int64
	for _, v := range perKey {
		total += v
	}
	eq(t, int64(goroutines*perGoroutine), total)
	eq(t, keys, len(perKey))

	g.Range(func(k string, v int64) bool {
		eq(t, int64(0), v)
		return true
	})
}

func TestAdderGroup_AdderBuiltOncePerKey(t *testing.T) {
	var built atomic.Int32
	g := NewAdderGroup[int, int64](func(*Config) { built.Add(1) })
	const keys = 8
	goroutines := max(runtime.NumCPU(), 4)
	perGoroutine := scaled(800)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for j := range perGoroutine {
				g.Inc(j % keys)
			}
		}()
	}
	wg.Wait()

	eq(t, int32(keys), built.Load())
	for k := range keys {
		v, ok := g.Get(k)
		eq(t, true, ok)
		eq(t, int64(goroutines*perGoroutine/keys), v)
	}
}
