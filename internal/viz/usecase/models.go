package usecase

import "github.com/shandysiswandi/goviz/internal/viz/entity"

type Preview struct {
	Filename     string
	LastModified string
	Columns      []string
	Rows         [][]string
	RowCount     int
	ColumnCount  int
}

type ColumnOption struct {
	Label string
	Value string
}

type UploadResult struct {
	UploadID     string
	Preview      Preview
	Store        entity.SerializedTable
	XOptions     []ColumnOption
	YOptions     []ColumnOption
	ColorOptions []ColumnOption
}

// Selection is the state of the four dropdowns. Empty strings mean unset.
type Selection struct {
	X        string
	Y        string
	Color    string
	PlotType entity.PlotType
}

type ChartInput struct {
	Selection Selection
	Store     entity.SerializedTable
}

// ChartSpec is what the page hands to echarts. Option is an echarts option
// object; an empty Option means "draw nothing".
type ChartSpec struct {
	Title  string
	Kind   entity.PlotType
	Option map[string]any
}
