package logging

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json", "warn")

	l.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warnf("shown %d", 2)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown 2", entry["message"])
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json", "loud")

	l.Debugf("hidden")
	assert.Empty(t, buf.String())
	l.Infof("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithAddsField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json", "info").With("component", "coordinator")

	l.Info().Msg("started")
	assert.Contains(t, buf.String(), `"component":"coordinator"`)
}

func TestSetOutputKeepsLevel(t *testing.T) {
	var first, second bytes.Buffer
	l := New(&first, "json", "error")
	l.SetOutput(&second)

	l.Warnf("dropped")
	l.Errorf("kept")
	assert.Empty(t, first.String())
	assert.NotContains(t, second.String(), "dropped")
	assert.Contains(t, second.String(), "kept")
}

func TestRetryLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json", "info")

	l.RetryLogger().Warn("retrying request", "url", "http://x/files", "attempt", 2)
	assert.Contains(t, buf.String(), `"url":"http://x/files"`)
	assert.Contains(t, buf.String(), `"attempt":"2"`)
}
