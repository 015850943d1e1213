package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("JSON handler respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New("warn", "json", &buf)
		logger.Info("dropped")
		logger.Warn("kept", "edge", 7)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "kept", entry["msg"])
		assert.Equal(t, float64(7), entry["edge"])
	})

	t.Run("Text handler and default level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New("bogus", "text", &buf)
		logger.Debug("hidden")
		logger.Info("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}
