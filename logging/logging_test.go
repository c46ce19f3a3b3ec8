package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DisabledWithoutFile(t *testing.T) {
	cleanup, err := SetupLogging("", "")
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, IsDebugMode())
	Debugf("dropped %d", 1)
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := SetupLogging(path, "debug")
	require.NoError(t, err)

	assert.True(t, IsDebugMode())
	Infof("dialog %s opened", "report")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dialog report opened")
	assert.False(t, IsDebugMode())
}

func TestSetupLogging_InfoLevelHidesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.log")
	cleanup, err := SetupLogging(path, "info")
	require.NoError(t, err)

	assert.False(t, IsDebugMode())
	Debugf("hidden line")
	Info("shown line")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden line")
	assert.Contains(t, string(data), "shown line")
}

func TestSetupLogging_BadLevel(t *testing.T) {
	_, err := SetupLogging(filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Error(t, err)
}
