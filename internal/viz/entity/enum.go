package entity

// PlotType is the chart kind picked in the plot-type dropdown.
type PlotType string

const (
	PlotScatter PlotType = "scatter"
	PlotBar     PlotType = "bar"
	PlotLine    PlotType = "line"
)

// Label is the dropdown text for a known plot type.
func (p PlotType) Label() string {
	switch p {
	case PlotScatter:
		return "Scatter Plot"
	case PlotBar:
		return "Bar Chart"
	case PlotLine:
		return "Line Plot"
	default:
		return string(p)
	}
}

// PlotTypes lists the selectable plot types in dropdown order.
func PlotTypes() []PlotType {
	return []PlotType{PlotScatter, PlotBar, PlotLine}
}

// Kind is the inferred type shared by every non-null value of a column.
type Kind string

const (
	KindInt    Kind = "int64"
	KindFloat  Kind = "float64"
	KindBool   Kind = "bool"
	KindTime   Kind = "datetime"
	KindString Kind = "string"
)

// Numeric reports whether values of this kind can be placed on a value axis.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Format is the spreadsheet format detected from the uploaded filename.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)
