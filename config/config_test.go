package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fixbond/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig, cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIXBOND_LOG_LEVEL", "debug")
	t.Setenv("FIXBOND_LOG_FORMAT", "json")
	t.Setenv("FIXBOND_CONCURRENCY", "16")
	t.Setenv("FIXBOND_MINOR_UNIT_PLACES", "0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		LogLevel:        "debug",
		LogFormat:       "json",
		Concurrency:     16,
		MinorUnitPlaces: 0,
	}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"FIXBOND_CONCURRENCY":       "0",
		"FIXBOND_MINOR_UNIT_PLACES": "9",
		"FIXBOND_LOG_FORMAT":        "xml",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := config.Load()
			require.Error(t, err)
		})
	}

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("FIXBOND_CONCURRENCY", "many")
		_, err := config.Load()
		require.Error(t, err)
	})
}
