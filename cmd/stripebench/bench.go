package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/striped"
)

// checkEvery is how many updates a worker performs between context checks.
const checkEvery = 4096

var errMismatch = errors.New("final value mismatch")

type config struct {
	Goroutines int
	Ops        int
	Kind       string
	MaxCells   int
}

func (c config) validate() error {
	if c.Goroutines < 1 {
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	if c.Ops < 1 {
		return fmt.Errorf("ops must be positive, got %d", c.Ops)
	}
	if c.MaxCells < 0 {
		return fmt.Errorf("max-cells must not be negative, got %d", c.MaxCells)
	}
	if c.Kind != "all" {
		if _, ok := findKind(c.Kind); !ok {
			return fmt.Errorf("unknown kind %q", c.Kind)
		}
	}
	return nil
}

func (c config) options() []func(*striped.Config) {
	if c.MaxCells > 0 {
		return []func(*striped.Config){striped.WithMaxCells(c.MaxCells)}
	}
	return nil
}

// target is one accumulator under test. update receives the worker index
// and the iteration; result and want are compared after all workers stop.
type target struct {
	update func(worker, i int)
	result func() float64
	want   float64
}

type kind struct {
	name  string
	build func(c config) target
}

var kinds = []kind{
	{
		name: "atomic",
		build: func(c config) target {
			var v atomic.Int64
			return target{
				update: func(int, int) { v.Add(1) },
				result: func() float64 { return float64(v.Load()) },
				want:   float64(c.Goroutines) * float64(c.Ops),
			}
		},
	},
	{
		name: "adder",
		build: func(c config) target {
			a := striped.NewAdder[int64](c.options()...)
			return target{
				update: func(int, int) { a.Inc() },
				result: func() float64 { return float64(a.Get()) },
				want:   float64(c.Goroutines) * float64(c.Ops),
			}
		},
	},
	{
		name: "max",
		build: func(c config) target {
			a := striped.NewAccumulator(func(x, y int64) int64 { return max(x, y) }, math.MinInt64, c.options()...)
			return target{
				update: func(w, i int) { a.Update(int64(w*c.Ops + i)) },
				result: func() float64 { return float64(a.Get()) },
				want:   float64(c.Goroutines*c.Ops - 1),
			}
		},
	},
	{
		name: "float",
		build: func(c config) target {
			a := striped.NewAdder[float64](c.options()...)
			return target{
				update: func(int, int) { a.Add(0.5) },
				result: a.Get,
				want:   float64(c.Goroutines) * float64(c.Ops) / 2,
			}
		},
	},
}

func kindNames() []string {
	names := []string{"all"}
	for _, k := range kinds {
		names = append(names, k.name)
	}
	return names
}

func findKind(name string) (kind, bool) {
	for _, k := range kinds {
		if k.name == name {
			return k, true
		}
	}
	return kind{}, false
}

// run exercises the configured kinds one after another and fails on the
// first one whose final value is not exact.
func run(ctx context.Context, logger *slog.Logger, c config) error {
	selected := kinds
	if c.Kind != "all" {
		k, _ := findKind(c.Kind)
		selected = []kind{k}
	}
	logger.Info("starting",
		"goroutines", c.Goroutines,
		"ops", c.Ops,
		"kinds", len(selected),
		"max_cells", c.MaxCells,
	)
	for _, k := range selected {
		res, err := runKind(ctx, k, c)
		if err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
		logger.Info("finished",
			"kind", k.name,
			"elapsed", res.elapsed,
			"ops_per_sec", math.Round(res.opsPerSec()),
			"ns_per_op", res.nsPerOp(),
			"value", res.value,
		)
	}
	return nil
}

type result struct {
	elapsed time.Duration
	ops     int
	value   float64
}

func (r result) opsPerSec() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.ops) / r.elapsed.Seconds()
}

func (r result) nsPerOp() float64 {
	if r.ops == 0 {
		return 0
	}
	return float64(r.elapsed.Nanoseconds()) / float64(r.ops)
}

func runKind(ctx context.Context, k kind, c config) (result, error) {
	t := k.build(c)
	g, ctx := errgroup.WithContext(ctx)
	start := make(chan struct{})
	for w := range c.Goroutines {
		g.Go(func() error {
			<-start
			for i := range c.Ops {
				if i%checkEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				t.update(w, i)
			}
			return nil
		})
	}
	began := time.Now()
	close(start)
	if err := g.Wait(); err != nil {
		return result{}, fmt.Errorf("workers: %w", err)
	}
	res := result{
		elapsed: time.Since(began),
		ops:     c.Goroutines * c.Ops,
		value:   t.result(),
	}
	if res.value != t.want {
		return res, fmt.Errorf("%w: got %v, want %v", errMismatch, res.value, t.want)
	}
	return res, nil
}
