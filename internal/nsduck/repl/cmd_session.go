package repl

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/nsduck/styled"
	"github.com/nsqlite/nsduck/internal/util/numutil"
)

func cmdState(r *Repl) {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Session", "Engine", "Path", "State"})
	tw.AppendRow(table.Row{
		r.session.ID(), r.session.Engine(), r.session.Path(), r.session.State(),
	})
	fmt.Println(tw.Render())
}

func cmdStats(r *Repl) {
	stats := r.session.Stats()

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Statements", "Failed", "Rows Returned", "Last Duration"})
	tw.AppendRow(table.Row{
		numutil.IntWithCommas(stats.Statements),
		numutil.IntWithCommas(stats.FailedStatements),
		numutil.IntWithCommas(stats.RowsReturned),
		stats.LastDuration,
	})
	fmt.Println(tw.Render())

	if !stats.LastStatementAt.IsZero() {
		styled.DimmedColor().Printf(
			"Last statement at %s\n", stats.LastStatementAt.Format(time.DateTime),
		)
	}
	fmt.Println()
}

func cmdConnect(r *Repl) {
	if err := r.session.Connect(r.ctx); err != nil {
		fmt.Println("Failed to connect:", err)
		return
	}
	r.logger.InfoNs(log.NsSession, "session connected", log.KV{"session": r.session.ID()})
	fmt.Println("Connected")
}

func cmdDisconnect(r *Repl) {
	if err := r.session.Disconnect(r.ctx); err != nil {
		fmt.Println("Failed to disconnect:", err)
		return
	}
	r.logger.InfoNs(log.NsSession, "session disconnected", log.KV{"session": r.session.ID()})
	fmt.Println("Disconnected, use .connect to run statements again")
}
