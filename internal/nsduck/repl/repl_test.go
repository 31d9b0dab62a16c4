package repl

import (
	"context"
	"errors"
	"testing"

	"github.com/nsqlite/nsduck"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepl(t *testing.T) *Repl {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	t.Cleanup(stop)

	session, err := nsduck.Create(ctx, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close(context.Background()) })

	return &Repl{
		session: session,
		logger:  log.NewDiscardLogger(),
		ctx:     ctx,
		stop:    stop,
	}
}

func TestDispatch(t *testing.T) {
	r := newTestRepl(t)

	t.Run("Quit", func(t *testing.T) {
		assert.True(t, r.dispatch(".quit"))
		assert.True(t, r.dispatch(".exit"))
		assert.False(t, r.dispatch(""))
		assert.False(t, r.dispatch(".unknown"))
	})

	t.Run("Statements", func(t *testing.T) {
		assert.False(t, r.dispatch("CREATE TABLE t (v INTEGER)"))
		assert.False(t, r.dispatch("SELEC broken"))
		assert.False(t, r.dispatch(".tables"))

		stats := r.session.Stats()
		assert.Equal(t, int64(3), stats.Statements)
		assert.Equal(t, int64(1), stats.FailedStatements)
	})

	t.Run("DisconnectConnect", func(t *testing.T) {
		r.dispatch(".disconnect")
		assert.Equal(t, nsduck.StateOpened, r.session.State())

		r.dispatch(".connect")
		assert.Equal(t, nsduck.StateConnected, r.session.State())
	})
}

func TestCmdHelpCompleter(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"dot commands", ".d", []string{".disconnect"}},
		{"case insensitive", "select", []string{"SELECT ", "SELECT * FROM ", "SELECT count(*) FROM "}},
		{"no match", "xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cmdHelpCompleter(tt.line))
		})
	}
}

func TestCleanError(t *testing.T) {
	qerr := &nsduck.QueryError{SQL: "SELEC 1", Message: " Parser Error: syntax error "}
	assert.Equal(t, "Parser Error: syntax error", cleanError(qerr))
	assert.Equal(t, "boom", cleanError(errors.New("boom")))
}
