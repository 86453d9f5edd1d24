package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesLogFileAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sanctuary.log")

	logger, closer, err := New(Options{Path: path, Level: "debug"})
	require.NoError(t, err)
	logger.Named("ambient").Info("playing", "sound", "rain")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "sanctuary.ambient: playing")
	require.Contains(t, string(data), "sound=rain")
}

func TestNew_EmptyPathFails(t *testing.T) {
	_, _, err := New(Options{Path: "  "})
	require.Error(t, err)
}

func TestNewWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "info", true)
	logger.Warn("actor offline", "failures", 2)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	require.Equal(t, "actor offline", line["@message"])
	require.Equal(t, "warn", line["@level"])
}

func TestNewWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "warn", false)
	logger.Info("hidden")
	require.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, hclog.Debug, ParseLevel("DEBUG"))
	require.Equal(t, hclog.Info, ParseLevel(""))
	require.Equal(t, hclog.Info, ParseLevel("verbose"))
	require.Equal(t, hclog.Error, ParseLevel(" error "))
}
