package nsduckbench

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/nsduck/binding"
	"github.com/nsqlite/nsduck/internal/version"
)

// Config represents the configuration for nsduckbench.
type Config struct {
	Engines  []string `arg:"--engine,separate,env:NSDUCKBENCH_ENGINES" help:"Engines to benchmark, may be repeated (default: duckdb and sqlite3)"`
	Sessions int      `arg:"--sessions,env:NSDUCKBENCH_SESSIONS" help:"Number of pooled sessions" default:"4"`
	Workers  int      `arg:"--workers,env:NSDUCKBENCH_WORKERS" help:"Number of concurrent goroutines" default:"8"`
	Inserts  int      `arg:"--inserts,env:NSDUCKBENCH_INSERTS" help:"Rows inserted by the insert benchmark" default:"10000"`
	Reads    int      `arg:"--reads,env:NSDUCKBENCH_READS" help:"Full table reads of the read benchmark" default:"200"`
	Series   int      `arg:"--series,env:NSDUCKBENCH_SERIES" help:"Length of the series summed by the compute benchmark" default:"100000"`
	Quiet    bool     `arg:"--quiet" help:"Hide the progress bars"`
	LogFile  string   `arg:"--log-file,env:NSDUCKBENCH_LOG_FILE" help:"Write JSON logs to this file"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.BenchVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if len(cfg.Engines) == 0 {
		cfg.Engines = defaultEngines()
	}

	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

func defaultEngines() []string {
	return []string{"duckdb", "sqlite3"}
}

func (c Config) validate() error {
	if err := validateEngines(c.Engines); err != nil {
		return err
	}

	counts := []struct {
		name  string
		value int
	}{
		{"sessions", c.Sessions},
		{"workers", c.Workers},
		{"inserts", c.Inserts},
		{"reads", c.Reads},
		{"series", c.Series},
	}
	for _, cnt := range counts {
		if err := validatePositive(cnt.name, cnt.value); err != nil {
			return err
		}
	}

	return nil
}

// validateEngines validates that every engine is registered.
func validateEngines(engines []string) error {
	if len(engines) == 0 {
		return errors.New("at least one engine is required")
	}

	valid := binding.Engines()
	for _, engine := range engines {
		if !slices.Contains(valid, engine) {
			return fmt.Errorf(
				"invalid engine %q, valid values are: %s",
				engine, strings.Join(valid, ", "),
			)
		}
	}
	return nil
}

// validatePositive validates that value is greater than zero.
func validatePositive(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("invalid %s, must be greater than zero", name)
	}
	return nil
}
