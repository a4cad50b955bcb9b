package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailico/mailico/pkg/config"
)

type serverConfig struct {
	Addr  string `env:"TEST_CFG_ADDR" envDefault:":8080"`
	Debug bool   `env:"TEST_CFG_DEBUG" envDefault:"false"`
}

type requiredConfig struct {
	Token string `env:"TEST_CFG_MISSING_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.False(t, cfg.Debug)
	})

	t.Run("cached between calls", func(t *testing.T) {
		var first, second serverConfig
		require.NoError(t, config.Load(&first))
		// Changing the environment after the first load must not leak into
		// later loads of the same type.
		t.Setenv("TEST_CFG_ADDR", ":9999")
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("missing required var", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[serverConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}
