package nsduck

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/nsduck/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	for _, engine := range []string{"duckdb", "sqlite3"} {
		t.Run(engine, func(t *testing.T) {
			conf := config.Config{
				Path:   filepath.Join(t.TempDir(), "test.db"),
				Engine: engine,
			}

			out := &bytes.Buffer{}
			require.NoError(t, runDemo(context.Background(), out, conf, log.NewDiscardLogger()))

			text := out.String()
			assert.Equal(t, 9, strings.Count(text, ": true"))
			assert.NotContains(t, text, ": false")
			assert.NotContains(t, text, "unexpected error")
			assert.Contains(t, text, "--- Free functions ---")
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("Discard", func(t *testing.T) {
		logger, closeLog, err := newLogger("")
		require.NoError(t, err)
		defer closeLog()
		assert.True(t, logger.IsInitialized())
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nsduck.log")
		logger, closeLog, err := newLogger(path)
		require.NoError(t, err)

		logger.InfoNs(log.NsSession, "session created", log.KV{"engine": "duckdb"})
		closeLog()

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"ns":"session"`)
		assert.Contains(t, string(b), `"engine":"duckdb"`)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		_, _, err := newLogger(filepath.Join(t.TempDir(), "missing", "nsduck.log"))
		assert.Error(t, err)
	})
}
