package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lmittmann/tint"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Measures striped accumulators against a single atomic word under contention.")

	var (
		goroutines = app.Flag("goroutines", "number of updating goroutines").Short('g').Envar("STRIPEBENCH_GOROUTINES").Default("8").Int()
		ops        = app.Flag("ops", "updates per goroutine").Short('n').Envar("STRIPEBENCH_OPS").Default("1000000").Int()
		kind       = app.Flag("kind", "accumulator to exercise").Short('k').Envar("STRIPEBENCH_KIND").Default("all").Enum(kindNames()...)
		maxCells   = app.Flag("max-cells", "cell table cap, 0 for the default").Envar("STRIPEBENCH_MAX_CELLS").Default("0").Int()
		logLevel   = app.Flag("log-level", "log level").Envar("STRIPEBENCH_LOG_LEVEL").Default("info").Enum("debug", "info", "warn", "error")
		noColor    = app.Flag("no-color", "disable colored log output").Bool()
	)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		app.Fatalf("%s, try --help", err)
	}

	cfg := config{
		Goroutines: *goroutines,
		Ops:        *ops,
		Kind:       *kind,
		MaxCells:   *maxCells,
	}
	if err := cfg.validate(); err != nil {
		app.Fatalf("%s", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		app.Fatalf("%s", err)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    *noColor,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("benchmark failed", "err", err)
		stop()
		os.Exit(1)
	}
}
