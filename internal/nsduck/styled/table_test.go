package styled

import (
	"testing"

	"github.com/nsqlite/nsduck/rowset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultTable(t *testing.T) {
	row, err := rowset.NewRow(
		[]string{"value", "text"},
		[]rowset.Value{rowset.Int(2), rowset.Text("hello")},
	)
	require.NoError(t, err)

	res := rowset.ResultSet{Columns: []string{"value", "text"}, Rows: []rowset.Row{row}}
	tw := ResultTable(res)
	tw.Style().Color.Header = nil

	out := tw.Render()
	assert.Contains(t, out, "value")
	assert.Contains(t, out, "hello")
	assert.Equal(t, 1, tw.Length())
}

func TestResultTableEmpty(t *testing.T) {
	tw := ResultTable(rowset.ResultSet{Columns: []string{"n"}, Rows: []rowset.Row{}})
	assert.Zero(t, tw.Length())
	assert.Contains(t, tw.Render(), "n")
}
