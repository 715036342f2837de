package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("loaded %d records", 500)

	assert.Contains(t, buf.String(), "DEBU")
	assert.Contains(t, buf.String(), "loaded 500 records")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("test message")
	Warn("test message")
	Section("Nothing")

	assert.Zero(t, buf.Len())
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Dataset Load")

	assert.Contains(t, buf.String(), "=== Dataset Load ===")
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("cache hit for %s", "fashion")
	Warn("cache unavailable")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "cache hit for fashion")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "cache unavailable")
}

func TestWith(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	l := With("adapi")
	l.Debug("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "adapi")
	assert.Contains(t, out, "shown")
	assert.Equal(t, &buf, Output())
}
