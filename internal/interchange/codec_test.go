package interchange

import (
	"bytes"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thys1a/WebAccounting/internal/model"
)

func TestExport(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	board := model.Board{
		ID:       "b1",
		Name:     "Groceries",
		ParentID: "p1",
		Status:   model.BoardActive,
	}

	txns := []model.Transaction{
		{ID: "t1", BoardID: "b1", Amount: decimal.RequireFromString("-42.50"), Description: "weekly shop", Type: model.TypeNormal, Date: date},
		{ID: "t2", BoardID: "other", Amount: decimal.RequireFromString("99"), Description: "not ours", Type: model.TypeNormal, Date: date},
		{ID: "t3", BoardID: "b1", Amount: decimal.RequireFromString("300"), Description: "Initial funding <- parent", Type: model.TypeAllocationIn, LinkedBoardID: "p1", Date: date},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(board, txns, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "BoardName,Groceries,ParentID,p1,Status,active", lines[0])
	assert.Equal(t, "Date,Description,Amount,Type", lines[1])
	assert.Equal(t, `2024-03-15T10:30:00Z,"weekly shop",-42.50,normal`, lines[2])
	assert.Equal(t, `2024-03-15T10:30:00Z,"Initial funding <- parent",300,allocation_in`, lines[3])
}

func TestExportParentlessBoard(t *testing.T) {
	board := model.Board{ID: "b1", Name: "Solo", Status: model.BoardClosed}

	var buf bytes.Buffer
	require.NoError(t, Export(board, nil, &buf))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "BoardName,Solo,ParentID,None,Status,closed", lines[0])
}

func TestParse(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rows with unparsable amounts are dropped, not fatal", func(t *testing.T) {
		input := strings.Join([]string{
			"BoardName,Trip,ParentID,None,Status,active",
			"Date,Description,Amount,Type",
			`2024-03-01T00:00:00Z,"hotel",-120.00,normal`,
			`2024-03-02T00:00:00Z,"flight",-300,normal`,
			`2024-03-03T00:00:00Z,"broken",abc,normal`,
			`2024-03-04T00:00:00Z,"dinner",-45.5,normal`,
			`2024-03-05T00:00:00Z,"refund",20,normal`,
		}, "\n")

		f, err := Parse(strings.NewReader(input), now)
		require.NoError(t, err)

		assert.Equal(t, "Trip (Imported)", f.BoardName)
		assert.Len(t, f.Rows, 4)
		assert.Equal(t, 1, f.Skipped)
	})

	t.Run("missing type defaults to normal", func(t *testing.T) {
		input := "BoardName,X,ParentID,None,Status,active\nDate,Description,Amount,Type\n2024-01-01,\"a\",10\n"

		f, err := Parse(strings.NewReader(input), now)
		require.NoError(t, err)
		require.Len(t, f.Rows, 1)
		assert.Equal(t, model.TypeNormal, f.Rows[0].Type)
	})

	t.Run("unknown type degrades to normal", func(t *testing.T) {
		input := "BoardName,X,ParentID,None,Status,active\nDate,Description,Amount,Type\n2024-01-01,\"a\",10,bogus\n"

		f, err := Parse(strings.NewReader(input), now)
		require.NoError(t, err)
		require.Len(t, f.Rows, 1)
		assert.Equal(t, model.TypeNormal, f.Rows[0].Type)
	})

	t.Run("blank lines and CRLF are tolerated", func(t *testing.T) {
		input := "BoardName,X,ParentID,None,Status,active\r\nDate,Description,Amount,Type\r\n2024-01-01,\"a\",10,normal\r\n\r\n"

		f, err := Parse(strings.NewReader(input), now)
		require.NoError(t, err)
		assert.Len(t, f.Rows, 1)
		assert.Equal(t, 0, f.Skipped)
	})

	t.Run("unparsable date falls back to import time", func(t *testing.T) {
		input := "BoardName,X,ParentID,None,Status,active\nDate,Description,Amount,Type\nnot-a-date,\"a\",10,normal\n"

		f, err := Parse(strings.NewReader(input), now)
		require.NoError(t, err)
		require.Len(t, f.Rows, 1)
		assert.True(t, f.Rows[0].Date.Equal(now))
	})

	t.Run("missing board name uses placeholder", func(t *testing.T) {
		input := "BoardName\nDate,Description,Amount,Type\n"

		f, err := Parse(strings.NewReader(input), now)
		require.NoError(t, err)
		assert.Equal(t, "Imported Board (Imported)", f.BoardName)
	})

	t.Run("too short input is an error", func(t *testing.T) {
		_, err := Parse(strings.NewReader("only one line"), now)
		assert.ErrorIs(t, err, ErrTooShort)
	})
}

func TestRoundTrip(t *testing.T) {
	// Export then import must reproduce the multiset of
	// (date, description, amount, type) rows.
	date := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)

	board := model.Board{ID: "b1", Name: "Vacation", ParentID: "p1", Status: model.BoardActive}
	txns := []model.Transaction{
		{ID: "t1", BoardID: "b1", Amount: decimal.RequireFromString("300"), Description: "Initial funding <- parent", Type: model.TypeAllocationIn, Date: date},
		{ID: "t2", BoardID: "b1", Amount: decimal.RequireFromString("-120.25"), Description: "hotel", Type: model.TypeNormal, Date: date.Add(24 * time.Hour)},
		{ID: "t3", BoardID: "b1", Amount: decimal.RequireFromString("-55"), Description: "museum tickets", Type: model.TypeNormal, Date: date.Add(48 * time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(board, txns, &buf))

	f, err := Parse(&buf, time.Now())
	require.NoError(t, err)
	require.Len(t, f.Rows, len(txns))
	assert.Equal(t, "Vacation (Imported)", f.BoardName)
	assert.Equal(t, 0, f.Skipped)

	var want, got []string
	for _, txn := range txns {
		want = append(want, strings.Join([]string{txn.Date.Format(time.RFC3339), txn.Description, txn.Amount.String(), string(txn.Type)}, "|"))
	}
	for _, row := range f.Rows {
		got = append(got, strings.Join([]string{row.Date.Format(time.RFC3339), row.Description, row.Amount.String(), string(row.Type)}, "|"))
	}
	sort.Strings(want)
	sort.Strings(got)
	assert.Equal(t, want, got)
}
