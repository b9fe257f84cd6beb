package usecase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shandysiswandi/goviz/internal/viz/entity"
)

// PlaceholderTitle is shown until there is data and both axes are picked.
const PlaceholderTitle = "Upload data and select columns to see the graph"

func placeholderChart() ChartSpec {
	return ChartSpec{
		Title: PlaceholderTitle,
		Option: map[string]any{
			"title": map[string]any{"text": PlaceholderTitle},
		},
	}
}

func chartTitle(sel Selection) string {
	title := fmt.Sprintf("%s of %s vs. %s", capitalize(string(sel.PlotType)), sel.Y, sel.X)
	if sel.Color != "" {
		title += fmt.Sprintf(" (Colored by %s)", sel.Color)
	}
	return title
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

type chartColumns struct {
	x, y  entity.Column
	color *entity.Column
}

func resolveColumns(table entity.Table, sel Selection) (chartColumns, error) {
	x, ok := table.Column(sel.X)
	if !ok {
		return chartColumns{}, &entity.ColumnNotFoundError{Column: sel.X}
	}
	y, ok := table.Column(sel.Y)
	if !ok {
		return chartColumns{}, &entity.ColumnNotFoundError{Column: sel.Y}
	}

	cols := chartColumns{x: x, y: y}
	if sel.Color != "" {
		c, ok := table.Column(sel.Color)
		if !ok {
			return chartColumns{}, &entity.ColumnNotFoundError{Column: sel.Color}
		}
		cols.color = &c
	}

	return cols, nil
}

// rowGroup is one plotted series: the rows sharing a color value.
type rowGroup struct {
	name string
	rows []int
}

// groupRows splits row indexes by color value in first-seen order. Without a
// color column every row lands in one group named after the Y column.
func groupRows(cols chartColumns, n int) []rowGroup {
	if cols.color == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return []rowGroup{{name: cols.y.Name, rows: all}}
	}

	var groups []rowGroup
	index := make(map[string]int)
	for i := 0; i < n; i++ {
		key := formatCell(cols.color.Cell(i))
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, rowGroup{name: key})
		}
		groups[gi].rows = append(groups[gi].rows, i)
	}
	return groups
}

func axisType(col entity.Column) string {
	switch {
	case col.Kind.Numeric():
		return "value"
	case col.Kind == entity.KindTime:
		return "time"
	default:
		return "category"
	}
}

// axisValue converts a cell for use on an echarts axis of axisType(col).
func axisValue(col entity.Column, i int) (any, bool) {
	v := col.Cell(i)
	if v == nil {
		return nil, false
	}
	if axisType(col) == "category" {
		return formatCell(v), true
	}
	f, ok := col.Float(i)
	return f, ok
}

// categories lists distinct X values in row order for a category axis.
func categories(col entity.Column) []string {
	if axisType(col) != "category" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for i := range col.Values {
		if col.Values[i] == nil {
			continue
		}
		s := formatCell(col.Values[i])
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// points returns the [x, y] pairs of a group, skipping rows with a null on
// either axis.
func points(cols chartColumns, g rowGroup) [][]any {
	out := make([][]any, 0, len(g.rows))
	for _, i := range g.rows {
		xv, okX := axisValue(cols.x, i)
		yv, okY := axisValue(cols.y, i)
		if !okX || !okY {
			continue
		}
		out = append(out, []any{xv, yv})
	}
	return out
}

func globalOptions(title string, cols chartColumns) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(cols.color != nil), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: cols.x.Name, Type: axisType(cols.x)}),
		charts.WithYAxisOpts(opts.YAxis{Name: cols.y.Name, Type: axisType(cols.y)}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "500px"}),
	}
}

func scatterChart(title string, cols chartColumns, n int) map[string]any {
	c := charts.NewScatter()
	c.SetGlobalOptions(globalOptions(title, cols)...)
	c.SetXAxis(categories(cols.x))
	for _, g := range groupRows(cols, n) {
		pts := points(cols, g)
		data := make([]opts.ScatterData, 0, len(pts))
		for _, p := range pts {
			data = append(data, opts.ScatterData{Value: p})
		}
		c.AddSeries(g.name, data)
	}
	c.Validate()
	return c.JSON()
}

func barChart(title string, cols chartColumns, n int) map[string]any {
	c := charts.NewBar()
	c.SetGlobalOptions(globalOptions(title, cols)...)
	c.SetXAxis(categories(cols.x))
	for _, g := range groupRows(cols, n) {
		pts := points(cols, g)
		data := make([]opts.BarData, 0, len(pts))
		for _, p := range pts {
			data = append(data, opts.BarData{Value: p})
		}
		c.AddSeries(g.name, data, charts.WithBarChartOpts(opts.BarChart{Stack: stackFor(cols)}))
	}
	c.Validate()
	return c.JSON()
}

func lineChart(title string, cols chartColumns, n int) map[string]any {
	c := charts.NewLine()
	c.SetGlobalOptions(globalOptions(title, cols)...)
	c.SetXAxis(categories(cols.x))
	for _, g := range groupRows(cols, n) {
		pts := points(cols, g)
		data := make([]opts.LineData, 0, len(pts))
		for _, p := range pts {
			data = append(data, opts.LineData{Value: p})
		}
		c.AddSeries(g.name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	c.Validate()
	return c.JSON()
}

// stackFor stacks colored bars like a grouped bar chart does by default.
func stackFor(cols chartColumns) string {
	if cols.color == nil {
		return ""
	}
	return "color"
}

// buildChart turns the dropdown state and the stored table into a chart.
//
// A missing table or axis yields the placeholder, an unknown plot type yields
// an empty spec, and a selection naming a column the table does not have
// yields *entity.ColumnNotFoundError.
func buildChart(sel Selection, table *entity.Table) (ChartSpec, error) {
	if table == nil || sel.X == "" || sel.Y == "" {
		return placeholderChart(), nil
	}

	var build func(title string, cols chartColumns, n int) map[string]any
	switch sel.PlotType {
	case entity.PlotScatter:
		build = scatterChart
	case entity.PlotBar:
		build = barChart
	case entity.PlotLine:
		build = lineChart
	default:
		return ChartSpec{Option: map[string]any{}}, nil
	}

	cols, err := resolveColumns(*table, sel)
	if err != nil {
		return ChartSpec{}, err
	}

	title := chartTitle(sel)
	return ChartSpec{
		Title:  title,
		Kind:   sel.PlotType,
		Option: build(title, cols, table.NumRows()),
	}, nil
}
