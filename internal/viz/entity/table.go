package entity

import "time"

// Column is a named, typed sequence of cells.
//
// Values holds nil for missing cells; every other element has the Go type
// matching Kind: int64, float64, bool, time.Time or string.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// Table is an ordered set of columns of equal length.
type Table struct {
	Columns []Column
}

// NumRows returns the number of rows (the shared column length).
func (t Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumColumns returns the number of columns.
func (t Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column looks up a column by exact name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Cell returns the value at row i of the named column.
func (c Column) Cell(i int) any {
	if i < 0 || i >= len(c.Values) {
		return nil
	}
	return c.Values[i]
}

// Float returns the cell as float64 for numeric and time columns.
//
// Times are converted to Unix milliseconds, which is what chart libraries
// expect on a time axis.
func (c Column) Float(i int) (float64, bool) {
	switch v := c.Cell(i).(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case time.Time:
		return float64(v.UnixMilli()), true
	default:
		return 0, false
	}
}
