package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	records := []map[string]any{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		rec := map[string]any{}
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}
	return records
}

func TestLogger(t *testing.T) {
	t.Run("JSONWithNamespace", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		require.True(t, logger.IsInitialized())

		logger.InfoNs(NsSession, "session opened", KV{"path": ":memory:"})
		logger.Error("query failed", KV{"sql": "SELEC 1"})

		records := decodeLines(t, buf)
		require.Len(t, records, 2)
		assert.Equal(t, "INFO", records[0]["level"])
		assert.Equal(t, "session opened", records[0]["msg"])
		assert.Equal(t, NsSession, records[0]["ns"])
		assert.Equal(t, ":memory:", records[0]["path"])
		assert.Equal(t, "ERROR", records[1]["level"])
		assert.NotContains(t, records[1], "ns")
	})

	t.Run("LevelFilter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLoggerWithLevel(buf, slog.LevelWarn)

		logger.Debug("hidden")
		logger.InfoNs(NsBench, "hidden")
		logger.WarnNs(NsBench, "slow query", KV{"ms": 1500})

		records := decodeLines(t, buf)
		require.Len(t, records, 1)
		assert.Equal(t, "slow query", records[0]["msg"])
		assert.EqualValues(t, 1500, records[0]["ms"])
	})

	t.Run("Zero", func(t *testing.T) {
		var logger Logger
		assert.False(t, logger.IsInitialized())
		discard := NewDiscardLogger()
		assert.True(t, discard.IsInitialized())
	})
}
