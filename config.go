package striped

// ============================================================================
// Configuration
// ============================================================================

// Config defines configurable options for striped accumulators.
type Config struct {
	// maxCells caps the length of the cell table. Growth stops once the
	// table holds maxCells cells; further contention is absorbed by CAS
	// retries. Zero means the default: the number of Ps rounded up to a
	// power of two.
	maxCells int
}

// WithMaxCells caps the number of cells an accumulator may allocate.
// n is rounded up to a power of two. A table always starts with two
// cells, so a cap below 2 only disables growth.
//
// It panics with ErrMaxCells if n < 1.
func WithMaxCells(n int) func(*Config) {
	if n < 1 {
		panic(ErrMaxCells)
	}
	return func(c *Config) {
		c.maxCells = nextPowOf2(n)
	}
}

func newConfig(options []func(*Config)) Config {
	var c Config
	for _, o := range options {
		if o != nil {
			o(&c)
		}
	}
	return c
}

type accumulatorError string

func (e accumulatorError) Error() string {
	return string(e)
}

const (
	// ErrNilCombine is the panic value of NewAccumulator when the combine
	// function is nil.
	ErrNilCombine accumulatorError = "striped: combine function must not be nil"
	// ErrMaxCells is the panic value of WithMaxCells for a cap below one.
	ErrMaxCells accumulatorError = "striped: max cells must be at least 1"
)
