package nsduckbench

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nsqlite/nsduck"
	"github.com/nsqlite/nsduck/internal/pooler"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	Statements  uint64
	RowsRead    uint64
	RowsWritten uint64
}

type benchmark func(
	ctx context.Context, pool *pooler.Pool[*nsduck.Session], conf Config,
) (benchmarkResult, error)

// runBenchmarkInsert inserts X users, one statement per user.
func runBenchmarkInsert(
	ctx context.Context, pool *pooler.Pool[*nsduck.Session], conf Config,
) (benchmarkResult, error) {
	start := time.Now()
	var written uint64

	bar := newBar(conf, fmt.Sprintf("Inserting %d users", conf.Inserts), conf.Inserts)
	err := runParallel(ctx, pool, conf.Workers, conf.Inserts, bar,
		func(ctx context.Context, s *nsduck.Session, idx int) error {
			res, err := s.Exec(ctx, fmt.Sprintf(
				"INSERT INTO users VALUES (%d, 'user%d@example.com', true)", idx, idx,
			))
			if err != nil {
				return fmt.Errorf("error when inserting: %w", err)
			}
			if res.RowsAffected > 0 {
				atomic.AddUint64(&written, uint64(res.RowsAffected))
			}
			return nil
		},
	)
	bar.Finish()
	if err != nil {
		return benchmarkResult{}, err
	}

	return benchmarkResult{
		Name:        "Insert",
		Duration:    time.Since(start),
		Statements:  uint64(conf.Inserts),
		RowsWritten: written,
	}, nil
}

// runBenchmarkRead reads the whole users table Y times. This simulates a
// read-heavy workload with full result materialization.
func runBenchmarkRead(
	ctx context.Context, pool *pooler.Pool[*nsduck.Session], conf Config,
) (benchmarkResult, error) {
	start := time.Now()
	var read uint64

	bar := newBar(conf, fmt.Sprintf("Reading all users %d times", conf.Reads), conf.Reads)
	err := runParallel(ctx, pool, conf.Workers, conf.Reads, bar,
		func(ctx context.Context, s *nsduck.Session, _ int) error {
			res, err := s.Query(ctx, "SELECT id, email, active FROM users ORDER BY id")
			if err != nil {
				return fmt.Errorf("error when querying: %w", err)
			}
			atomic.AddUint64(&read, uint64(res.Len()))
			return nil
		},
	)
	bar.Finish()
	if err != nil {
		return benchmarkResult{}, err
	}

	return benchmarkResult{
		Name:       "Read",
		Duration:   time.Since(start),
		Statements: uint64(conf.Reads),
		RowsRead:   read,
	}, nil
}

// runBenchmarkCompute sums a generated series once per worker and checks
// the total, keeping the engines busy without touching storage.
func runBenchmarkCompute(
	ctx context.Context, pool *pooler.Pool[*nsduck.Session], conf Config,
) (benchmarkResult, error) {
	start := time.Now()
	n := int64(conf.Series)
	want := n * (n + 1) / 2
	query := fmt.Sprintf(`
		WITH RECURSIVE series(x) AS (
			SELECT 1 UNION ALL SELECT x + 1 FROM series WHERE x < %d
		)
		SELECT sum(x) AS total FROM series
	`, n)

	bar := newBar(conf, fmt.Sprintf("Summing %d numbers %d times", n, conf.Workers), conf.Workers)
	err := runParallel(ctx, pool, conf.Workers, conf.Workers, bar,
		func(ctx context.Context, s *nsduck.Session, _ int) error {
			res, err := s.Query(ctx, query)
			if err != nil {
				return fmt.Errorf("error when computing: %w", err)
			}
			if res.Empty() {
				return errors.New("error when computing: no rows")
			}
			v, _ := res.Rows[0].Get("total")
			if got, ok := v.Int64(); !ok || got != want {
				return fmt.Errorf("error when computing: got %s, want %d", v, want)
			}
			return nil
		},
	)
	bar.Finish()
	if err != nil {
		return benchmarkResult{}, err
	}

	return benchmarkResult{
		Name:       "Compute",
		Duration:   time.Since(start),
		Statements: uint64(conf.Workers),
		RowsRead:   uint64(conf.Workers),
	}, nil
}
