// Package interchange implements the flat tabular text format used to move
// a board's transactions in and out of the ledger.
//
// The layout is fixed: a metadata line, a column header, then one line per
// transaction. Data rows split on bare commas with only the description
// quoted; that grammar is deliberate, so encoding/csv (which would give
// quoted commas special meaning) is not used here.
package interchange

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/shopspring/decimal"
)

// ErrTooShort means the input is missing the metadata or header line.
var ErrTooShort = errors.New("interchange file needs a metadata line and a header line")

// ImportedSuffix is appended to the board name on import so an imported
// copy never masquerades as the original.
const ImportedSuffix = " (Imported)"

// Row is one parsed data line.
type Row struct {
	Date        time.Time
	Description string
	Type        model.TransactionType
	Amount      decimal.Decimal
}

// File is the parsed form of an interchange document.
type File struct {
	// BoardName is the display name from the metadata line, already
	// carrying the imported suffix.
	BoardName string
	Rows      []Row
	// Skipped counts data rows dropped for a non-numeric amount. Dropping
	// is a data-quality policy, not an error: the rest of the file imports.
	Skipped int
}

// Export writes the board and its transactions in the interchange layout:
//
//	BoardName,<name>,ParentID,<parentId|None>,Status,<status>
//	Date,Description,Amount,Type
//	<date>,"<description>",<amount>,<type>
func Export(board model.Board, txns []model.Transaction, w io.Writer) error {
	parentID := board.ParentID
	if parentID == "" {
		parentID = "None"
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "BoardName,%s,ParentID,%s,Status,%s\n", board.Name, parentID, board.Status)
	fmt.Fprintln(bw, "Date,Description,Amount,Type")

	for _, t := range txns {
		if t.BoardID != board.ID {
			continue
		}
		fmt.Fprintf(bw, "%s,%q,%s,%s\n",
			t.Date.Format(time.RFC3339),
			t.Description,
			t.Amount.String(),
			t.Type)
	}

	return bw.Flush()
}

// Parse reads an interchange document. Rows whose amount does not parse as
// a number are counted in Skipped and dropped; unknown transaction types
// and unparsable dates degrade to normal entries dated now, keeping the row.
func Parse(r io.Reader, now time.Time) (File, error) {
	var f File

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return f, fmt.Errorf("failed to read interchange data: %w", err)
	}
	if len(lines) < 2 {
		return f, ErrTooShort
	}

	metaParts := strings.Split(lines[0], ",")
	name := "Imported Board"
	if len(metaParts) > 1 && strings.TrimSpace(metaParts[1]) != "" {
		name = strings.TrimSpace(metaParts[1])
	}
	f.BoardName = name + ImportedSuffix

	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, ok := parseRow(line, now)
		if !ok {
			f.Skipped++
			continue
		}
		f.Rows = append(f.Rows, row)
	}

	return f, nil
}

func parseRow(line string, now time.Time) (Row, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return Row{}, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
	if err != nil {
		return Row{}, false
	}

	row := Row{
		Description: strings.ReplaceAll(parts[1], `"`, ""),
		Amount:      amount,
		Type:        model.TypeNormal,
		Date:        now,
	}

	if len(parts) > 3 {
		if t := model.TransactionType(strings.TrimSpace(parts[3])); t.Valid() {
			row.Type = t
		}
	}

	if d, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[0])); err == nil {
		row.Date = d
	} else if d, err := time.Parse("2006-01-02", strings.TrimSpace(parts[0])); err == nil {
		row.Date = d
	}

	return row, true
}
