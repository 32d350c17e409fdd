// Package envconfig loads the optional environment overrides for the demo commands.
package envconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/theapemachine/qcircuit"
)

var ErrMalformedValue = errors.New("malformed environment value")

// Config holds the overrides. Nil pointers mean "use the demo's embedded constant".
type Config struct {
	LogLevel       string
	LogPretty      bool
	Shots          *int
	Seed           uint64
	Seeded         bool
	ReadoutError   float64
	ArtifactDir    string
	ArtifactFormat string // json or msgpack
	GroverTarget   string
	GroverRounds   *int
}

/*
Load reads a .env file if present and then the process environment. Empty
variables count as unset. A value that is set but cannot be parsed, or a
shot count below one, or a negative round count, is a configuration error;
every problem found is reported together.
*/
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := &Config{
		LogLevel:       getEnv("QCIRCUIT_LOG_LEVEL", "info"),
		ArtifactDir:    getEnv("QCIRCUIT_ARTIFACT_DIR", "."),
		ArtifactFormat: getEnv("QCIRCUIT_ARTIFACT_FORMAT", "json"),
		GroverTarget:   getEnv("GROVER_TARGET", ""),
	}

	var err error

	cfg.LogPretty, err = getEnvAsBool("QCIRCUIT_LOG_PRETTY", true)
	collect(err)

	cfg.Shots, err = getEnvAsInt("QCIRCUIT_SHOTS", qcircuit.ErrInvalidShots)
	collect(err)
	if cfg.Shots != nil && *cfg.Shots <= 0 {
		collect(fmt.Errorf("%w: QCIRCUIT_SHOTS=%d", qcircuit.ErrInvalidShots, *cfg.Shots))
	}

	cfg.GroverRounds, err = getEnvAsInt("GROVER_ROUNDS", qcircuit.ErrInvalidRounds)
	collect(err)
	if cfg.GroverRounds != nil && *cfg.GroverRounds < 0 {
		collect(fmt.Errorf("%w: GROVER_ROUNDS=%d", qcircuit.ErrInvalidRounds, *cfg.GroverRounds))
	}

	cfg.Seed, cfg.Seeded, err = getEnvAsUint("QCIRCUIT_SEED")
	collect(err)

	cfg.ReadoutError, err = getEnvAsFloat("QCIRCUIT_READOUT_ERROR", 0)
	collect(err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// ShotsOr returns the configured shot count, whatever its value, or fallback when none is set.
func (c *Config) ShotsOr(fallback int) int {
	if c.Shots == nil {
		return fallback
	}
	return *c.Shots
}

// SimulatorOptions translates the overrides into simulator options.
func (c *Config) SimulatorOptions() []qcircuit.SimulatorOption {
	opts := []qcircuit.SimulatorOption{qcircuit.WithReadoutError(c.ReadoutError)}
	if c.Seeded {
		opts = append(opts, qcircuit.WithSeed(c.Seed))
	}
	return opts
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	return value, ok && value != ""
}

func getEnv(key, defaultValue string) string {
	if value, ok := lookup(key); ok {
		return value
	}
	return defaultValue
}

func malformed(key, value string, kind error) error {
	if kind == nil {
		return fmt.Errorf("%w: %s=%q", ErrMalformedValue, key, value)
	}
	return fmt.Errorf("%w: %w: %s=%q", ErrMalformedValue, kind, key, value)
}

// getEnvAsInt returns nil when key is unset; kind classifies a parse failure.
func getEnvAsInt(key string, kind error) (*int, error) {
	value, ok := lookup(key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, malformed(key, value, kind)
	}
	return &n, nil
}

func getEnvAsUint(key string) (uint64, bool, error) {
	value, ok := lookup(key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false, malformed(key, value, nil)
	}
	return n, true, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value, ok := lookup(key)
	if !ok {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, malformed(key, value, qcircuit.ErrReadoutError)
	}
	return f, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value, ok := lookup(key)
	if !ok {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, malformed(key, value, nil)
	}
	return b, nil
}
