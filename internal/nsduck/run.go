package nsduck

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqlite/nsduck"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/nsduck/config"
	"github.com/nsqlite/nsduck/internal/nsduck/repl"
	"github.com/nsqlite/nsduck/internal/version"
)

// Run runs the nsduck shell.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.CLIVersion())

	logger, closeLog, err := newLogger(conf.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if conf.Demo {
		return runDemo(ctx, os.Stdout, conf, logger)
	}

	session, err := nsduck.Create(
		ctx, conf.Path, conf.EngineOptions, nsduck.WithEngine(conf.Engine),
	)
	if err != nil {
		return err
	}
	logger.InfoNs(log.NsSession, "session created", log.KV{
		"session": session.ID(),
		"engine":  session.Engine(),
		"path":    session.Path(),
	})

	rp := repl.NewRepl(ctx, stop, session, logger)
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	rp.Shutdown()

	// The shell is exiting; a statement still running gets its turn first.
	if err := session.Close(context.Background()); err != nil {
		logger.ErrorNs(log.NsSession, "error closing session", log.KV{"error": err.Error()})
		return err
	}
	logger.InfoNs(log.NsSession, "session closed", log.KV{"session": session.ID()})

	fmt.Printf("\nGoodbye!\n\n")
	return nil
}

// newLogger returns a JSON logger writing to path, or a discarding logger
// when path is empty.
func newLogger(path string) (log.Logger, func(), error) {
	if path == "" {
		return log.NewDiscardLogger(), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.Logger{}, nil, fmt.Errorf("error opening log file: %w", err)
	}
	return log.NewLogger(file), func() { _ = file.Close() }, nil
}
