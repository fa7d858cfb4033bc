package striped

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func BenchmarkAdderThroughput(b *testing.B) {
	for pIdx := 1; pIdx <= 32; pIdx *= 2 {
		b.Run(fmt.Sprintf("type:%s;goroutines:%d", "atomic", pIdx), func(b *testing.B) {
			var counter atomic.Int64
			runThroughput(b, pIdx, func() { counter.Add(1) }, counter.Load)
		})
		b.Run(fmt.Sprintf("type:%s;goroutines:%d", "adder", pIdx), func(b *testing.B) {
			var counter Adder[int64]
			runThroughput(b, pIdx, counter.Inc, counter.Get)
		})
		b.Run(fmt.Sprintf("type:%s;goroutines:%d", "accumulator", pIdx), func(b *testing.B) {
			acc := NewAccumulator(add[int64], 0)
			runThroughput(b, pIdx, func() { acc.Update(1) }, acc.Get)
		})
	}
}

func runThroughput(b *testing.B, goroutines int, op func(), load func() int64) {
	canRun := &sync.WaitGroup{}
	canRun.Add(1)

	wg := &sync.WaitGroup{}
	wg.Add(goroutines)

	opsPerGoroutine := b.N / goroutines
	for range goroutines {
		go func() {
			defer wg.Done()
			canRun.Wait()

			for range opsPerGoroutine {
				op()
			}
		}()
	}

	b.ResetTimer()
	b.ReportAllocs()
	canRun.Done()

	wg.Wait()
	b.StopTimer()

	expectedResult := int64(goroutines * opsPerGoroutine)
	if v := load(); v != expectedResult {
		b.Errorf("result is not as expected: %v != %v", v, expectedResult)
	}
}
