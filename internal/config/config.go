// Package config holds the knobs of the stress loop. Defaults reproduce the
// reference workload: a 100ms trigger driving Fibonacci(40), primes up to
// 100000 and a 300x300 matrix product on a single worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPeriod     = 100 * time.Millisecond
	DefaultFibonacciN = 40
	DefaultPrimeLimit = 100000
	DefaultMatrixSize = 300
	DefaultWorkers    = 1
)

// EnvPrefix is prepended to every environment variable name read by ApplyEnv.
const EnvPrefix = "STRESSLOOP_"

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the complete runtime configuration.
type Config struct {
	Period     time.Duration
	FibonacciN int
	PrimeLimit int
	MatrixSize int

	// Workers > 1 splits the prime and matrix loops across a worker pool.
	Workers int
	// Pin locks the iteration worker (and pool workers) to CPU cores.
	Pin bool
	// Seed for the matrix RNG; 0 picks a time based seed.
	Seed int64

	Progress bool
	NoColor  bool

	CPUProfile string
	MemProfile string
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Period:     DefaultPeriod,
		FibonacciN: DefaultFibonacciN,
		PrimeLimit: DefaultPrimeLimit,
		MatrixSize: DefaultMatrixSize,
		Workers:    DefaultWorkers,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Period <= 0:
		return fmt.Errorf("%w: period must be > 0, got %v", ErrInvalid, c.Period)
	case c.FibonacciN < 0:
		return fmt.Errorf("%w: fibonacci depth must be >= 0, got %d", ErrInvalid, c.FibonacciN)
	case c.PrimeLimit < 0:
		return fmt.Errorf("%w: prime limit must be >= 0, got %d", ErrInvalid, c.PrimeLimit)
	case c.MatrixSize < 1:
		return fmt.Errorf("%w: matrix size must be >= 1, got %d", ErrInvalid, c.MatrixSize)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left untouched.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load env file %s: %w", path, err)
	}
	return nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from STRESSLOOP_* variables found via lookup.
// A nil lookup reads the process environment.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	e := envReader{lookup: lookup}

	e.durationVar("PERIOD", &c.Period)
	e.intVar("FIB", &c.FibonacciN)
	e.intVar("PRIMES", &c.PrimeLimit)
	e.intVar("MATRIX", &c.MatrixSize)
	e.intVar("WORKERS", &c.Workers)
	e.boolVar("PIN", &c.Pin)
	e.int64Var("SEED", &c.Seed)
	e.boolVar("PROGRESS", &c.Progress)
	e.boolVar("NO_COLOR", &c.NoColor)
	e.stringVar("CPUPROFILE", &c.CPUProfile)
	e.stringVar("MEMPROFILE", &c.MemProfile)

	return errors.Join(e.errs...)
}

type envReader struct {
	lookup LookupFunc
	errs   []error
}

func (e *envReader) get(name string) (string, bool) {
	v, ok := e.lookup(EnvPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envReader) fail(name, raw string, err error) {
	e.errs = append(e.errs, fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, name, raw, err))
}

func (e *envReader) durationVar(name string, dst *time.Duration) {
	if raw, ok := e.get(name); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			e.fail(name, raw, err)
			return
		}
		*dst = d
	}
}

func (e *envReader) intVar(name string, dst *int) {
	if raw, ok := e.get(name); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			e.fail(name, raw, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) int64Var(name string, dst *int64) {
	if raw, ok := e.get(name); ok {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			e.fail(name, raw, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) boolVar(name string, dst *bool) {
	if raw, ok := e.get(name); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			e.fail(name, raw, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) stringVar(name string, dst *string) {
	if raw, ok := e.get(name); ok {
		*dst = raw
	}
}
