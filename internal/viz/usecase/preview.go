package usecase

import (
	"strconv"
	"time"

	"github.com/shandysiswandi/goviz/internal/viz/entity"
)

// DefaultPreviewRows is how many rows the upload preview shows.
const DefaultPreviewRows = 10

const lastModifiedLayout = "2006-01-02 15:04:05.000"

// renderPreview summarizes a freshly parsed table for display. It has no side
// effects; maxRows below 1 falls back to DefaultPreviewRows.
func renderPreview(table entity.Table, filename string, lastModified time.Time, maxRows int) Preview {
	if maxRows < 1 {
		maxRows = DefaultPreviewRows
	}

	n := min(table.NumRows(), maxRows)
	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, table.NumColumns())
		for j, col := range table.Columns {
			row[j] = formatCell(col.Cell(i))
		}
		rows[i] = row
	}

	modified := ""
	if !lastModified.IsZero() {
		modified = lastModified.UTC().Format(lastModifiedLayout)
	}

	return Preview{
		Filename:     filename,
		LastModified: modified,
		Columns:      table.ColumnNames(),
		Rows:         rows,
		RowCount:     table.NumRows(),
		ColumnCount:  table.NumColumns(),
	}
}

// formatCell renders a cell the way it reads in a spreadsheet.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NaN"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case time.Time:
		return val.Format(time.DateTime)
	case string:
		return val
	default:
		return ""
	}
}
