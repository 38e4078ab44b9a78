package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("json with level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "json", "warn")

		logger.Info("hidden")
		logger.Warn("shown", "page_id", "abc")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "shown", line["msg"])
		assert.Equal(t, "abc", line["page_id"])
		assert.Same(t, logger, slog.Default())
	})

	t.Run("text falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", "loud")

		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}
