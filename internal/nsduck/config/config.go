package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/nsduck/binding"
	"github.com/nsqlite/nsduck/internal/version"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration for the nsduck shell.
type Config struct {
	Path        string            `arg:"positional" help:"Path of the database file, :memory: for an in-memory database" default:":memory:"`
	Engine      string            `arg:"--engine,env:NSDUCK_ENGINE" help:"Database engine (duckdb, sqlite3)" default:"duckdb"`
	Options     map[string]string `arg:"--option,separate" help:"Engine option as key=value, may be repeated (e.g. --option threads=4)"`
	OptionsFile string            `arg:"--options-file,env:NSDUCK_OPTIONS_FILE" help:"YAML file with engine options; --option flags take precedence"`
	LogFile     string            `arg:"--log-file,env:NSDUCK_LOG_FILE" help:"Write JSON logs to this file instead of discarding them"`
	Demo        bool              `arg:"--demo" help:"Run the example queries and exit"`

	// EngineOptions is Options merged over the options file.
	EngineOptions binding.Options `arg:"-"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.CLIVersion())
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

	if err := cfg.finalize(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// finalize validates the parsed flags and resolves EngineOptions.
func (c *Config) finalize() error {
	if err := validateEngine(c.Engine); err != nil {
		return err
	}

	if err := validatePath(c.Path); err != nil {
		return err
	}

	fileOptions := binding.Options{}
	if c.OptionsFile != "" {
		var err error
		fileOptions, err = loadOptionsFile(c.OptionsFile)
		if err != nil {
			return err
		}
	}

	c.EngineOptions = mergeOptions(fileOptions, c.Options)
	return nil
}

// validateEngine validates if engine is a registered engine name.
func validateEngine(engine string) error {
	valid := binding.Engines()
	if slices.Contains(valid, engine) {
		return nil
	}

	return fmt.Errorf(
		"invalid engine, valid values are: %s",
		strings.Join(valid, ", "),
	)
}

// validatePath rejects paths that can only be a mistake.
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("invalid path, use :memory: for an in-memory database")
	}
	return nil
}

// loadOptionsFile reads a flat YAML mapping of engine options. Scalar
// values are converted to their string form.
func loadOptionsFile(path string) (binding.Options, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading options file: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("error parsing options file: %w", err)
	}

	options := binding.Options{}
	for key, value := range raw {
		switch v := value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("invalid options file: %q must be a scalar value", key)
		case nil:
			options[key] = ""
		default:
			options[key] = fmt.Sprint(v)
		}
	}

	return options, nil
}

// mergeOptions returns base overridden by overrides.
func mergeOptions(base, overrides map[string]string) binding.Options {
	merged := binding.Options{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
