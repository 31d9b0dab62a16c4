package nsduckbench

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/nsduckbench/benchbar"
	"github.com/nsqlite/nsduck/internal/util/numutil"
	"github.com/nsqlite/nsduck/internal/version"
)

// Run executes the benchmarks for every configured engine and prints the
// results.
func Run(ctx context.Context) error {
	conf := MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.BenchVersion())

	logger := log.NewDiscardLogger()
	if conf.LogFile != "" {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		defer file.Close()
		logger = log.NewLogger(file)
	}

	tmpDir, err := os.MkdirTemp("", "nsduckbench_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	for _, engine := range conf.Engines {
		fmt.Printf("\n--- Benchmarks for %s ---\n", engine)

		results, err := runBenchmarks(ctx, conf, engine, tmpDir, logger)
		if err != nil {
			return fmt.Errorf("error benchmarking %s: %w", engine, err)
		}
		printResults(results)
	}

	return nil
}

// runBenchmarks runs every benchmark for engine on a fresh session pool.
func runBenchmarks(
	ctx context.Context, conf Config, engine string, dir string, logger log.Logger,
) ([]benchmarkResult, error) {
	path, err := benchPath(engine, dir)
	if err != nil {
		return nil, err
	}

	pool, err := newSessionPool(conf, engine, path, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pool.Close(); err != nil {
			logger.ErrorNs(log.NsBench, "error closing sessions", log.KV{"error": err.Error()})
		}
	}()

	benchs := []benchmark{
		runBenchmarkInsert,
		runBenchmarkRead,
		runBenchmarkCompute,
	}

	var results []benchmarkResult
	for _, bench := range benchs {
		res, err := bench(ctx, pool, conf)
		if err != nil {
			return nil, err
		}

		logger.InfoNs(log.NsBench, "benchmark done", log.KV{
			"engine":   engine,
			"name":     res.Name,
			"duration": res.Duration.String(),
		})
		results = append(results, res)
	}

	return results, nil
}

func newBar(conf Config, description string, maxItems int) *benchbar.Bar {
	if conf.Quiet {
		return benchbar.NewSilentBar(maxItems)
	}
	return benchbar.NewBar(description, maxItems)
}

func printResults(results []benchmarkResult) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgYellow, text.Bold}
	tw.AppendHeader(table.Row{"Name", "Statements", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Name,
			numutil.IntWithCommas(r.Statements),
			numutil.IntWithCommas(r.RowsRead),
			numutil.IntWithCommas(r.RowsWritten),
			r.Duration,
		})
	}

	fmt.Println(tw.Render())
}
