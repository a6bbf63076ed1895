package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[app]
log_level = "debug"

[rating]
provider = "openrouter"
timeout = "15s"

[gemini]
api_key = "from-file"

[image]
jpeg_quality = 90

[telegram]
allowed_chat_ids = [1, 2]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, testConfig)))

	assert.Equal(t, "openrouter", viper.GetString("rating.provider"))
	assert.Equal(t, "from-file", viper.GetString("gemini.api_key"))
	assert.Equal(t, 90, viper.GetInt("image.jpeg_quality"))
	assert.Equal(t, "gemini-2.0-flash", viper.GetString("gemini.model"))
	assert.Equal(t, zerolog.DebugLevel, LogLevel())

	timeout, err := Duration("rating.timeout")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, timeout)

	var ids []int64
	require.NoError(t, viper.UnmarshalKey("telegram.allowed_chat_ids", &ids))
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("RATING_PROVIDER", "gemini")

	require.NoError(t, Load(writeConfig(t, testConfig)))

	assert.Equal(t, "from-env", viper.GetString("gemini.api_key"))
	assert.Equal(t, "gemini", viper.GetString("rating.provider"))
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	require.NoError(t, Load(""))

	assert.Equal(t, "gemini", viper.GetString("rating.provider"))
	assert.Equal(t, zerolog.InfoLevel, LogLevel())

	timeout, err := Duration("handler.timeout")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, timeout)
}

func TestDuration_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("rating.timeout", "soon")

	_, err := Duration("rating.timeout")
	require.Error(t, err)
}
