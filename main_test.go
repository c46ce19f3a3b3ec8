package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andareed/siftly-gallery/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Version: "+Version+"\n", out)
}

func TestCLI_RootNeedsCatalog(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestCLI_RootRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := execute(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestCLI_ConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sfgallery", "config.toml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCLI_Replay(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`
name: demo
steps:
  - {op: trigger, id: help, kind: help}
  - {op: toggle, id: help, kind: help}
`), 0o644))

	out, err := execute(t, "replay", script)
	require.NoError(t, err)
	assert.Contains(t, out, "- step: 1")
	assert.Contains(t, out, "result: help")
	assert.Contains(t, out, "result: closed")
}

func TestCLI_ReplayUnknownOp(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(script, []byte("steps:\n  - {op: explode}\n"), 0o644))

	_, err := execute(t, "replay", script)
	require.Error(t, err)
	assert.ErrorIs(t, err, replay.ErrUnknownOp)
}

func TestCLI_ReplayMissingScript(t *testing.T) {
	_, err := execute(t, "replay", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open script")
}
