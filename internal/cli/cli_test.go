package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/provreplay/internal/render"
)

func TestParse(t *testing.T) {
	t.Run("all flags populate the config", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse([]string{
			"-provenance", "record.yaml",
			"-plugins-path", "manifests",
			"-o", "replay.py",
			"-collection-threshold", "4",
			"-log-format", "json",
			"-log-level", "debug",
		}, &out)

		require.NoError(t, err)
		assert.False(t, shouldExit)
		require.NotNil(t, config)
		assert.Equal(t, "record.yaml", config.ProvenancePath)
		assert.Equal(t, "manifests", config.PluginsPath)
		assert.Equal(t, "replay.py", config.OutputPath)
		assert.Equal(t, 4, config.CollectionThreshold)
		assert.Equal(t, "json", config.LogFormat)
		assert.Equal(t, "debug", config.LogLevel)
	})

	t.Run("defaults apply when only a record is given", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse([]string{"-provenance", "record.yaml"}, &out)

		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "plugins", config.PluginsPath)
		assert.Equal(t, "", config.OutputPath)
		assert.Equal(t, render.DefaultCollectionThreshold, config.CollectionThreshold)
		assert.Equal(t, "text", config.LogFormat)
		assert.Equal(t, "info", config.LogLevel)
	})

	t.Run("shorthand record flag", func(t *testing.T) {
		var out bytes.Buffer
		config, _, err := Parse([]string{"-p", "record.yaml"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "record.yaml", config.ProvenancePath)
	})

	t.Run("positional record path", func(t *testing.T) {
		var out bytes.Buffer
		config, _, err := Parse([]string{"record.yaml"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "record.yaml", config.ProvenancePath)
	})

	t.Run("explicit flag wins over the positional path", func(t *testing.T) {
		var out bytes.Buffer
		config, _, err := Parse([]string{"-provenance", "a.yaml", "b.yaml"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "a.yaml", config.ProvenancePath)
	})

	t.Run("no arguments prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse(nil, &out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, config)
		assert.Contains(t, out.String(), "Usage:")
		assert.Contains(t, out.String(), "RECORD_PATH")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse([]string{"-h"}, &out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, config)
	})

	t.Run("unknown flag is an exit error", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-bogus"}, &out)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log format is rejected", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-provenance", "r.yaml", "-log-format", "xml"}, &out)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "log-format")
	})

	t.Run("invalid log level is rejected", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-provenance", "r.yaml", "-log-level", "loud"}, &out)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "log-level")
	})

	t.Run("log format and level are case-insensitive", func(t *testing.T) {
		var out bytes.Buffer
		config, _, err := Parse([]string{"-provenance", "r.yaml", "-log-format", "JSON", "-log-level", "WARN"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "json", config.LogFormat)
		assert.Equal(t, "warn", config.LogLevel)
	})

	t.Run("negative collection threshold is rejected", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-provenance", "r.yaml", "-collection-threshold", "-1"}, &out)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
