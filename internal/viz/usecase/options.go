package usecase

import "github.com/shandysiswandi/goviz/internal/viz/entity"

// columnOptions derives dropdown options from the table's columns, in order.
// Each selector gets its own call so no slice is shared between widgets.
func columnOptions(table entity.Table) []ColumnOption {
	options := make([]ColumnOption, 0, table.NumColumns())
	for _, name := range table.ColumnNames() {
		options = append(options, ColumnOption{Label: name, Value: name})
	}
	return options
}
