package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetupJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "info", "json"))

	slog.Debug("hidden")
	slog.Info("budget alert", "category", "Food")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "budget alert", rec["msg"])
	assert.Equal(t, "Food", rec["category"])
}

func TestSetupRejectsUnknownFormat(t *testing.T) {
	assert.Error(t, Setup(&bytes.Buffer{}, "info", "xml"))
}
