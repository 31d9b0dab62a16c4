package nsduck

import (
	"context"
	"fmt"
	"io"

	"github.com/nsqlite/nsduck"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/nsduck/config"
	"github.com/nsqlite/nsduck/internal/nsduck/styled"
	"github.com/nsqlite/nsduck/rowset"
)

type demoQuery struct {
	sql    string
	column string
	want   rowset.Value
}

var demoQueries = []demoQuery{
	{sql: "SELECT 3 + 3 AS value", column: "value", want: rowset.Int(6)},
	{sql: "SELECT 1 + 1 AS value", column: "value", want: rowset.Int(2)},
	{sql: "SELECT 2 + 2 AS value", column: "value", want: rowset.Int(4)},
	{sql: "SELECT 4 + 4 AS value", column: "value", want: rowset.Int(8)},
	{sql: "SELECT 'hello' AS text", column: "text", want: rowset.Text("hello")},
}

// runDemo runs the example queries twice: through a Session created in one
// step, and through the free functions on a separately opened Session. A
// mismatching result is reported but does not stop the demo.
func runDemo(ctx context.Context, w io.Writer, conf config.Config, logger log.Logger) error {
	session, err := nsduck.Create(
		ctx, conf.Path, conf.EngineOptions, nsduck.WithEngine(conf.Engine),
	)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}

	fmt.Fprintln(w, "--- Session methods ---")
	for _, q := range demoQueries {
		res, err := session.Query(ctx, q.sql)
		printDemoResult(w, q, res, err)
	}
	if err := session.Close(ctx); err != nil {
		return fmt.Errorf("error closing session: %w", err)
	}
	logger.InfoNs(log.NsSession, "demo session closed", log.KV{"session": session.ID()})

	session, err = nsduck.Open(ctx, conf.Path, conf.EngineOptions, nsduck.WithEngine(conf.Engine))
	if err != nil {
		return fmt.Errorf("error opening session: %w", err)
	}
	defer nsduck.Close(ctx, session)

	if err := nsduck.Connect(ctx, session); err != nil {
		return fmt.Errorf("error connecting session: %w", err)
	}

	fmt.Fprintln(w, "--- Free functions ---")
	for _, q := range demoQueries[1:] {
		res, err := nsduck.Query(ctx, session, q.sql)
		printDemoResult(w, q, res, err)
	}

	return nil
}

func printDemoResult(w io.Writer, q demoQuery, res rowset.ResultSet, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s: unexpected error: %v\n", q.sql, err)
		return
	}

	fmt.Fprintln(w, q.sql)
	fmt.Fprintln(w, styled.ResultTable(res).Render())

	if res.Empty() {
		fmt.Fprintf(w, "check failed: no rows\n")
		return
	}
	got, _ := res.Rows[0].Get(q.column)
	fmt.Fprintf(w, "%s == %s: %t\n", q.column, q.want, got.Equal(q.want))
}
