package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("MANGAPORTAL_TEST_KEY", "from-env")

	// Flag wins over environment.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "MANGAPORTAL_TEST_KEY", "default"))

	// Environment wins over default.
	assert.Equal(t, "from-env", getConfigValue("", "MANGAPORTAL_TEST_KEY", "default"))

	// Default when nothing else is set.
	assert.Equal(t, "default", getConfigValue("", "MANGAPORTAL_TEST_UNSET", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("MANGAPORTAL_TEST_BOOL", "false")

	assert.False(t, getBoolConfigValue("", "MANGAPORTAL_TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("true", "MANGAPORTAL_TEST_BOOL", false))
	assert.True(t, getBoolConfigValue("", "MANGAPORTAL_TEST_BOOL_UNSET", true))

	t.Setenv("MANGAPORTAL_TEST_BOOL", "notabool")
	assert.True(t, getBoolConfigValue("", "MANGAPORTAL_TEST_BOOL", true))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("tilde expansion", func(t *testing.T) {
		got, err := expandPath("~/manga/data", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "manga", "data"), got)
	})

	t.Run("empty uses default", func(t *testing.T) {
		got, err := expandPath("", "/srv/default")
		require.NoError(t, err)
		assert.Equal(t, "/srv/default", got)
	})

	t.Run("relative becomes absolute", func(t *testing.T) {
		got, err := expandPath("data", "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestValidate(t *testing.T) {
	valid := &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/tmp/mangaportal"},
	}
	assert.NoError(t, valid.Validate())

	t.Run("bad environment", func(t *testing.T) {
		cfg := *valid
		cfg.App.Environment = "dev"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := *valid
		cfg.Logger.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing data path", func(t *testing.T) {
		cfg := *valid
		cfg.Data.BasePath = ""
		assert.Error(t, cfg.Validate())
	})
}
