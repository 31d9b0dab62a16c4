package repl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nsqlite/nsduck"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/util/sysutil"
	"github.com/peterh/liner"
)

type Repl struct {
	session     *nsduck.Session
	logger      log.Logger
	ctx         context.Context
	stop        context.CancelFunc
	line        *liner.State
	historyPath string
	closeOnce   sync.Once
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	session *nsduck.Session,
	logger log.Logger,
) *Repl {
	return &Repl{
		session:     session,
		logger:      logger,
		ctx:         ctx,
		stop:        stop,
		line:        liner.NewLiner(),
		historyPath: filepath.Join(os.TempDir(), ".nsduck_history"),
	}
}

// Start reads statements until the user quits or ctx is done. Quitting
// cancels ctx; the caller still owns Shutdown.
func (r *Repl) Start() error {
	r.line.SetCtrlCAborts(true)
	r.line.SetCompleter(cmdHelpCompleter)
	r.loadHistory()

	fmt.Println()
	fmt.Printf("Connected to %s (%s)\n", r.session.Path(), r.session.Engine())
	fmt.Println(`Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Println()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input, err := r.prompt()
			if err != nil {
				r.stop()
				return nil
			}

			if quit := r.dispatch(input); quit {
				r.stop()
				return nil
			}
		}
	}
}

// dispatch runs one line of input and reports whether the REPL must exit.
func (r *Repl) dispatch(input string) bool {
	switch input {
	case "":
		return false
	case "exit", ".exit", ".quit":
		return true
	case "clear", ".clear":
		sysutil.ClearTerminal()
	case "help", ".help":
		cmdHelp()
	case ".tables":
		cmdTables(r)
	case ".state":
		cmdState(r)
	case ".stats":
		cmdStats(r)
	case ".connect":
		cmdConnect(r)
	case ".disconnect":
		cmdDisconnect(r)
	default:
		if strings.HasPrefix(input, ".") {
			fmt.Println("Unknown command, type .help for usage hints")
			return false
		}
		cmdQuery(r, input)
	}

	return false
}

// Shutdown stops the REPL, saves the history and restores the terminal.
func (r *Repl) Shutdown() {
	r.stop()
	r.closeOnce.Do(func() {
		r.saveHistory()
		_ = r.line.Close()
	})
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt() (string, error) {
	label := "nsduck> "
	if r.session.State() != nsduck.StateConnected {
		label = fmt.Sprintf("nsduck(%s)> ", r.session.State())
	}

	input, err := r.line.Prompt(label)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println("CTRL+C pressed, exiting...")
		}
		return "", err
	}

	input = strings.TrimSpace(input)
	if input != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *Repl) loadHistory() {
	file, err := os.Open(r.historyPath)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = r.line.ReadHistory(file)
}

func (r *Repl) saveHistory() {
	file, err := os.Create(r.historyPath)
	if err != nil {
		r.logger.WarnNs(log.NsRepl, "cannot save history", log.KV{"error": err.Error()})
		return
	}
	defer file.Close()
	_, _ = r.line.WriteHistory(file)
}
