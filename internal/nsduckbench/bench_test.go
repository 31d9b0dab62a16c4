package nsduckbench

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nsqlite/nsduck/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	return Config{
		Engines:  defaultEngines(),
		Sessions: 2,
		Workers:  4,
		Inserts:  40,
		Reads:    10,
		Series:   1000,
		Quiet:    true,
	}
}

func TestRunBenchmarks(t *testing.T) {
	conf := smallConfig()

	for _, engine := range conf.Engines {
		t.Run(engine, func(t *testing.T) {
			results, err := runBenchmarks(
				context.Background(), conf, engine, t.TempDir(), log.NewDiscardLogger(),
			)
			require.NoError(t, err)
			require.Len(t, results, 3)

			assert.Equal(t, "Insert", results[0].Name)
			assert.EqualValues(t, conf.Inserts, results[0].RowsWritten)
			assert.EqualValues(t, conf.Reads, results[1].Statements)
			assert.NotZero(t, results[1].RowsRead)
			assert.EqualValues(t, conf.Workers, results[2].RowsRead)
		})
	}
}

func Test_benchPath(t *testing.T) {
	dir := t.TempDir()

	path, err := benchPath("duckdb", dir)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", path)

	path, err = benchPath("sqlite3", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sqlite3", "bench.db"), path)
	assert.DirExists(t, filepath.Join(dir, "sqlite3"))

	_, err = benchPath("mysql", dir)
	assert.Error(t, err)
}

func TestRunParallelCanceled(t *testing.T) {
	conf := smallConfig()
	pool, err := newSessionPool(conf, "duckdb", ":memory:", log.NewDiscardLogger())
	require.NoError(t, err)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = runParallel(ctx, pool, 2, 5, newBar(conf, "", 5), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
