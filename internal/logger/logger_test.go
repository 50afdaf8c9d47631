package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_Disabled(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	var buf bytes.Buffer
	Init(Options{Enabled: false, Writer: &buf})
	L.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestInit_Text(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf, Level: slog.LevelDebug})
	L.Debug("bootstrap", "size", 4096)
	assert.Contains(t, buf.String(), "msg=bootstrap")
	assert.Contains(t, buf.String(), "size=4096")
}

func TestInit_JSONLevel(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf, Level: slog.LevelInfo, JSON: true})
	L.Debug("dropped")
	L.Info("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}
