package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/ugparu/btaudio/leaudio/catalog"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, []string{"aac", "sbc"}, cfg.Codecs)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, lvl)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, catalog.LocationHost, loc)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFile(filepath.Join("testdata", "btaudio.yaml"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr)
	require.True(t, cfg.EnablePprof)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "SbcOnly", cfg.FactoryName)
	require.Equal(t, []string{"sbc"}, cfg.Codecs)
	// Keys absent from the file keep their defaults.
	require.Empty(t, cfg.CatalogScenarios)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, lvl)

	_, err = LoadFile(filepath.Join("testdata", "malformed.yaml"))
	require.Error(t, err)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no_addr", func(c *Config) { c.HTTPAddr = "" }},
		{"bad_level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad_format", func(c *Config) { c.LogFormat = "xml" }},
		{"no_codecs", func(c *Config) { c.Codecs = nil }},
		{"bad_location", func(c *Config) { c.CodecLocation = "cloud" }},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.modify(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join("testdata", "btaudio.yaml"))
	t.Setenv("BTAUDIO_HTTP_ADDR", ":7070")
	t.Setenv("BTAUDIO_CODECS", " sbc , aac ,")
	t.Setenv("BTAUDIO_ENABLE_PPROF", "false")
	t.Setenv("BTAUDIO_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTPAddr)
	require.Equal(t, []string{"sbc", "aac"}, cfg.Codecs)
	require.False(t, cfg.EnablePprof)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "SbcOnly", cfg.FactoryName)
	require.Equal(t, "controller", cfg.CodecLocation)
}

func TestLoadFrom(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join("testdata", "missing.yaml"))
	t.Setenv("BTAUDIO_HTTP_ADDR", ":7070")

	// The explicit path wins over BTAUDIO_CONFIG, the environment still overrides the file.
	cfg, err := LoadFrom(filepath.Join("testdata", "btaudio.yaml"))
	require.NoError(t, err)
	require.Equal(t, "SbcOnly", cfg.FactoryName)
	require.Equal(t, ":7070", cfg.HTTPAddr)

	_, err = LoadFrom("")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("BTAUDIO_LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
}
