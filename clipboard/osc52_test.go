package clipboard

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyOSC52_WritesSequence(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TMUX", "")
	var buf bytes.Buffer

	require.NoError(t, copyOSC52(&buf, "abc123"))
	assert.Contains(t, buf.String(), base64.StdEncoding.EncodeToString([]byte("abc123")))
	assert.Contains(t, buf.String(), "\x1b]52;")
}

func TestCopyOSC52_RefusesNonTTYFile(t *testing.T) {
	t.Setenv("TERM", "xterm")
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	err = copyOSC52(f, "x")
	assert.ErrorIs(t, err, ErrUnavailable)
}
