package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	_ Logger = NoOpLogger{}
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = (*ZapAdapter)(nil)
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{"debug": LogLevelDebug, "INFO": LogLevelInfo, "warning": LogLevelWarn, "error": LogLevelError, "": LogLevelInfo}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseLevel("loud")
	assert.False(t, ok)
}

func TestNewLogger_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelWarn, Format: "json", Output: &buf, Component: "cli"})
	l.Info("hidden")
	l.Warn("shown", "operation", "SendMessage")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "SendMessage", entry["operation"])
	assert.Equal(t, "cli", entry["component"])
}

func TestNewLogger_NilConfigUsesDefaults(t *testing.T) {
	l := NewLogger(nil)
	require.NotNil(t, l)
	assert.Equal(t, LogLevelInfo, DefaultLoggerConfig().Level)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "text", Output: &buf})
	l.Debug("command.invoke.start", "operation", "GetAssistant")
	assert.Contains(t, buf.String(), "msg=command.invoke.start")
	assert.Contains(t, buf.String(), "operation=GetAssistant")
}

func TestZapAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapAdapter(zap.New(core))
	l.Info("command.invoke.success", "operation", "PutFeedback", "duration_ms", int64(3))
	l.Error("command.invoke.error", "error", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "command.invoke.success", entries[0].Message)
	assert.Equal(t, "PutFeedback", entries[0].ContextMap()["operation"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestNewZapAdapter_NilIsSafe(t *testing.T) {
	l := NewZapAdapter(nil)
	l.Warn("ignored")
	assert.NotNil(t, l)
}
