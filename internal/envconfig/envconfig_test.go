package envconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theapemachine/qcircuit"
)

var keys = []string{
	"QCIRCUIT_LOG_LEVEL", "QCIRCUIT_LOG_PRETTY", "QCIRCUIT_SHOTS", "QCIRCUIT_SEED",
	"QCIRCUIT_READOUT_ERROR", "QCIRCUIT_ARTIFACT_DIR", "QCIRCUIT_ARTIFACT_FORMAT",
	"GROVER_TARGET", "GROVER_ROUNDS",
}

func clearEnv(t *testing.T) {
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Nil(t, cfg.Shots)
	assert.False(t, cfg.Seeded)
	assert.Equal(t, ".", cfg.ArtifactDir)
	assert.Equal(t, "json", cfg.ArtifactFormat)
	assert.Nil(t, cfg.GroverRounds)
	assert.Equal(t, 1024, cfg.ShotsOr(1024))
	assert.Len(t, cfg.SimulatorOptions(), 1)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("QCIRCUIT_LOG_LEVEL", "debug")
	t.Setenv("QCIRCUIT_LOG_PRETTY", "false")
	t.Setenv("QCIRCUIT_SHOTS", "2000")
	t.Setenv("QCIRCUIT_SEED", "42")
	t.Setenv("QCIRCUIT_READOUT_ERROR", "0.05")
	t.Setenv("QCIRCUIT_ARTIFACT_FORMAT", "msgpack")
	t.Setenv("GROVER_TARGET", "0110")
	t.Setenv("GROVER_ROUNDS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 2000, cfg.ShotsOr(1024))
	assert.True(t, cfg.Seeded)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.InDelta(t, 0.05, cfg.ReadoutError, 1e-12)
	assert.Equal(t, "msgpack", cfg.ArtifactFormat)
	assert.Equal(t, "0110", cfg.GroverTarget)
	require.NotNil(t, cfg.GroverRounds)
	assert.Equal(t, 0, *cfg.GroverRounds)
	assert.Len(t, cfg.SimulatorOptions(), 2)
}

func TestLoad_RejectsBadShots(t *testing.T) {
	for _, value := range []string{"0", "-5", "many"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("QCIRCUIT_SHOTS", value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.True(t, qcircuit.IsConfigError(err))
			assert.ErrorIs(t, err, qcircuit.ErrInvalidShots)
		})
	}
}

func TestLoad_RejectsBadRounds(t *testing.T) {
	for _, value := range []string{"-3", "x"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GROVER_ROUNDS", value)

			_, err := Load()
			assert.ErrorIs(t, err, qcircuit.ErrInvalidRounds)
		})
	}
}

func TestLoad_ReportsEveryMalformedValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("QCIRCUIT_SEED", "-3")
	t.Setenv("QCIRCUIT_LOG_PRETTY", "maybe")
	t.Setenv("QCIRCUIT_READOUT_ERROR", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedValue)
	assert.ErrorIs(t, err, qcircuit.ErrReadoutError)
	assert.Contains(t, err.Error(), "QCIRCUIT_SEED")
	assert.Contains(t, err.Error(), "QCIRCUIT_LOG_PRETTY")
}

func TestShotsOr_PassesExplicitValuesThrough(t *testing.T) {
	zero := 0
	cfg := &Config{Shots: &zero}
	assert.Equal(t, 0, cfg.ShotsOr(1024))
}
