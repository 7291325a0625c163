package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "json", "info")
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Int("workers", 2).Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"service":"poolmap"`)
	assert.Contains(t, out, `"workers":2`)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "console", "debug")
	require.NoError(t, err)

	log.Debug().Msg("phase change")
	assert.Contains(t, buf.String(), "phase change")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "json", "chatty")
	assert.Error(t, err)
}
