package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/nsduck"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/nsduck/styled"
)

// tablesQueries lists the tables of each engine.
var tablesQueries = map[string]string{
	"duckdb":  "SELECT table_name AS name FROM information_schema.tables ORDER BY table_name",
	"sqlite3": "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name",
}

func cmdQuery(r *Repl, input string) {
	res, err := r.session.Query(r.ctx, input)
	if err != nil {
		r.logger.ErrorNs(log.NsRepl, "statement failed", log.KV{
			"session": r.session.ID(),
			"sql":     input,
			"error":   err.Error(),
		})

		tw := styled.NewTableWriter()
		tw.AppendHeader(table.Row{"Error"})
		tw.AppendRow(table.Row{cleanError(err)})
		fmt.Println(tw.Render())
		return
	}

	r.logger.DebugNs(log.NsRepl, "statement done", log.KV{
		"session":  r.session.ID(),
		"rows":     res.Len(),
		"duration": res.Duration.String(),
	})

	if len(res.Columns) == 0 {
		fmt.Println("OK")
	} else {
		fmt.Println(styled.ResultTable(res).Render())
	}
	styled.DimmedColor().Printf("%d row(s) in %s\n", res.Len(), res.Duration)
}

func cmdTables(r *Repl) {
	query, ok := tablesQueries[r.session.Engine()]
	if !ok {
		fmt.Printf("Listing tables is not supported for engine %s\n", r.session.Engine())
		return
	}
	cmdQuery(r, query)
}

// cleanError keeps the engine diagnostic of query errors and the full chain
// of any other error.
func cleanError(err error) string {
	var qerr *nsduck.QueryError
	if errors.As(err, &qerr) {
		return strings.TrimSpace(qerr.Message)
	}
	return err.Error()
}
