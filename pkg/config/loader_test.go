package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/republicadrc/memberkit/pkg/config"
)

type testConfig struct {
	Name    string        `env:"TEST_CFG_NAME" envDefault:"memberkit"`
	Window  time.Duration `env:"TEST_CFG_WINDOW" envDefault:"10m"`
	Retries int           `env:"TEST_CFG_RETRIES" envDefault:"3"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.ResetCache()

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "memberkit", cfg.Name)
		assert.Equal(t, 10*time.Minute, cfg.Window)
		assert.Equal(t, 3, cfg.Retries)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CFG_NAME", "override")
		t.Setenv("TEST_CFG_WINDOW", "5m")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "override", cfg.Name)
		assert.Equal(t, 5*time.Minute, cfg.Window)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CFG_RETRIES", "7")

		var first testConfig
		require.NoError(t, config.Load(&first))

		// Environment changes after the first load are not observed.
		t.Setenv("TEST_CFG_RETRIES", "9")
		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, 7, second.Retries)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		config.ResetCache()

		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}
