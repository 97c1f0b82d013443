package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewDefaultLogger(LevelWarn, &buf)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN] warn message")
	assert.Contains(t, out, "[ERROR] error message")
}

func TestDefaultLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	log := NewDefaultLogger(LevelInfo, &buf)

	log.Info("component %s failed: %v", "thread_stacks", "boom")
	assert.Contains(t, buf.String(), "component thread_stacks failed: boom")
}

func TestDefaultLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	log := NewDefaultLogger(LevelInfo, &buf)

	log.WithField("dump", "app.dmp").Info("opened")

	out := buf.String()
	assert.Contains(t, out, "dump=app.dmp")
	assert.Contains(t, out, "opened")

	// The parent logger is unchanged.
	buf.Reset()
	log.Info("plain")
	assert.NotContains(t, buf.String(), "dump=")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLogLevel("WARNING"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("bogus"))
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	log := &NullLogger{}
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	assert.Equal(t, log, log.WithField("k", "v"))
}
