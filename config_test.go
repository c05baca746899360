package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, used, err := loadConfig(viper.New(), newRootCmd().Flags(), "")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, "box", cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "tiktoken", cfg.Tokenizer)
	assert.Equal(t, 0, cfg.Threads)
	assert.False(t, cfg.Display)
	assert.False(t, cfg.NoBytes)
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	path := writeConfig(t, "threads = 3\nformat = \"yaml\"\nno-bytes = true\ngitignore = true\n")

	cfg, used, err := loadConfig(viper.New(), newRootCmd().Flags(), path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.Threads)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.NoBytes)
	assert.True(t, cfg.Gitignore)

	flags := newRootCmd().Flags()
	require.NoError(t, flags.Set("threads", "5"))
	require.NoError(t, flags.Set("format", "box"))
	cfg, _, err = loadConfig(viper.New(), flags, path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Threads)
	assert.Equal(t, "box", cfg.Format)
	assert.True(t, cfg.NoBytes)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "threads = 3\n")
	t.Setenv("LC_THREADS", "7")
	t.Setenv("LC_NO_COLOR", "true")

	cfg, _, err := loadConfig(viper.New(), newRootCmd().Flags(), path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Threads)
	assert.True(t, cfg.NoColor)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, _, err := loadConfig(viper.New(), newRootCmd().Flags(), filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	flags := newRootCmd().Flags()
	require.NoError(t, flags.Set("threads", "-2"))
	t.Setenv("HOME", t.TempDir())
	_, _, err = loadConfig(viper.New(), flags, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads")
}
