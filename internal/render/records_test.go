package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tckview/internal/cypher"
	"github.com/roach88/tckview/internal/markup"
	"github.com/roach88/tckview/internal/scenario"
)

func TestRecords_HeaderRowPlusOnePerRecord(t *testing.T) {
	records := scenario.ValueRecords{
		Header: []string{"a", "b"},
		Rows: []map[string]cypher.Value{
			{"a": cypher.Int(1), "b": cypher.Str("x")},
			{"a": cypher.Int(2), "b": cypher.Str("y")},
		},
	}

	table, err := Records(records)
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	header := table.Rows[0]
	require.Len(t, header.Cells, 2)
	assert.Equal(t, "a", markup.PlainText(header.Cells[0].Children...))
	assert.Equal(t, "b", markup.PlainText(header.Cells[1].Children...))
	for _, cell := range header.Cells {
		assert.True(t, cell.Header)
	}
}

func TestRecords_CellsFollowHeaderOrderNotRowOrder(t *testing.T) {
	records := scenario.ValueRecords{
		Header: []string{"b", "a"},
		Rows: []map[string]cypher.Value{
			{"a": cypher.Int(1), "b": cypher.Int(2)},
		},
	}

	table, err := Records(records)
	require.NoError(t, err)

	row := table.Rows[1]
	require.Len(t, row.Cells, 2)
	assert.Equal(t, markup.Code("2"), row.Cells[0].Children[0])
	assert.Equal(t, markup.Code("1"), row.Cells[1].Children[0])
}

func TestRecords_ValuesWrappedAsCode(t *testing.T) {
	records := scenario.ValueRecords{
		Header: []string{"n"},
		Rows: []map[string]cypher.Value{
			{"n": cypher.Node{Labels: []string{"A"}}},
		},
	}

	table, err := Records(records)
	require.NoError(t, err)
	assert.Equal(t, markup.Code("(:A)"), table.Rows[1].Cells[0].Children[0])
}

func TestRecords_MissingColumnFails(t *testing.T) {
	records := scenario.ValueRecords{
		Header: []string{"a", "b"},
		Rows: []map[string]cypher.Value{
			{"a": cypher.Int(1), "b": cypher.Int(2)},
			{"a": cypher.Int(3)}, // no value for "b"
		},
	}

	table, err := Records(records)
	require.Error(t, err)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "b", missing.Column)
	assert.Equal(t, 1, missing.Row)

	// No partial table.
	assert.Empty(t, table.Rows)
}

func TestIsMissingColumn(t *testing.T) {
	err := &MissingColumnError{Column: "x", Row: 0}
	assert.True(t, IsMissingColumn(err))
	assert.True(t, IsMissingColumn(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsMissingColumn(fmt.Errorf("other")))
}

func TestRecords_EmptyRowsIsJustHeader(t *testing.T) {
	table, err := Records(scenario.ValueRecords{Header: []string{"a"}})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}
