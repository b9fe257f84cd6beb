package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shandysiswandi/goviz/internal/viz/entity"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	errIncompleteSelection = errors.New("select both X and Y columns to export the chart")
	errUnknownPlotType     = errors.New("unknown plot type")
	errNoPlottableRows     = errors.New("selected columns have no plottable rows")
	errContinuousAxes      = errors.New("scatter and line exports need a numeric or datetime X and a numeric Y")
)

const (
	defaultExportWidth  = 1024
	defaultExportHeight = 600
)

// exportChart renders the selection to PNG. Unlike buildChart, an incomplete
// selection or unknown plot type is an error since there is nothing to draw.
func exportChart(sel Selection, table *entity.Table, width, height int) ([]byte, error) {
	if table == nil || sel.X == "" || sel.Y == "" {
		return nil, errIncompleteSelection
	}
	if width <= 0 {
		width = defaultExportWidth
	}
	if height <= 0 {
		height = defaultExportHeight
	}

	switch sel.PlotType {
	case entity.PlotScatter, entity.PlotLine, entity.PlotBar:
	default:
		return nil, fmt.Errorf("%w %q", errUnknownPlotType, sel.PlotType)
	}

	cols, err := resolveColumns(*table, sel)
	if err != nil {
		return nil, err
	}

	title := chartTitle(sel)
	groups := groupRows(cols, table.NumRows())

	var buf bytes.Buffer
	if sel.PlotType == entity.PlotBar {
		err = renderBars(&buf, title, cols, groups, width, height)
	} else {
		err = renderContinuous(&buf, title, sel.PlotType, cols, groups, width, height)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func seriesStyle(kind entity.PlotType, col drawing.Color) chart.Style {
	if kind == entity.PlotScatter {
		return chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    4,
			DotColor:    col,
		}
	}
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

func renderContinuous(buf *bytes.Buffer, title string, kind entity.PlotType, cols chartColumns, groups []rowGroup, width, height int) error {
	timeX := cols.x.Kind == entity.KindTime
	if !(cols.x.Kind.Numeric() || timeX) || !cols.y.Kind.Numeric() {
		return errContinuousAxes
	}

	var (
		series []chart.Series
		allX   []float64
		allY   []float64
	)
	for gi, g := range groups {
		var xs, ys []float64
		var times []time.Time
		for _, i := range g.rows {
			x, okX := cols.x.Float(i)
			y, okY := cols.y.Float(i)
			if !okX || !okY || math.IsNaN(y) {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, y)
			if timeX {
				times = append(times, cols.x.Values[i].(time.Time))
			}
		}
		if len(xs) == 0 {
			continue
		}
		allX = append(allX, xs...)
		allY = append(allY, ys...)

		st := seriesStyle(kind, chart.GetDefaultColor(gi))

		// go-chart needs two X values per series.
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
			if timeX {
				times = append(times, times[0].Add(time.Second))
			}
		}

		if timeX {
			series = append(series, chart.TimeSeries{Name: g.name, XValues: times, YValues: ys, Style: st})
		} else {
			series = append(series, chart.ContinuousSeries{Name: g.name, XValues: xs, YValues: ys, Style: st})
		}
	}
	if len(series) == 0 {
		return errNoPlottableRows
	}

	xAxis := chart.XAxis{Name: cols.x.Name}
	if timeX {
		xAxis.ValueFormatter = chart.TimeValueFormatter
	} else {
		xAxis.Range = flatRange(allX)
	}

	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: cols.y.Name, Range: flatRange(allY)},
		Series:     series,
	}
	if cols.color != nil {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	return ch.Render(chart.PNG, buf)
}

// flatRange pads a range whose values are all equal, which go-chart rejects.
// It returns a nil chart.Range (auto range) otherwise; a typed nil pointer
// would make go-chart call IsZero on it.
func flatRange(values []float64) chart.Range {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo != hi {
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.1, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func renderBars(buf *bytes.Buffer, title string, cols chartColumns, groups []rowGroup, width, height int) error {
	if !cols.y.Kind.Numeric() {
		return errContinuousAxes
	}

	var bars []chart.Value
	for gi, g := range groups {
		st := chart.Style{
			FillColor:   chart.GetDefaultColor(gi),
			StrokeColor: chart.GetDefaultColor(gi),
			StrokeWidth: 1,
		}
		for _, i := range g.rows {
			y, ok := cols.y.Float(i)
			if !ok || cols.x.Cell(i) == nil {
				continue
			}
			label := formatCell(cols.x.Cell(i))
			if cols.color != nil {
				label += " / " + g.name
			}
			bars = append(bars, chart.Value{Label: label, Value: y, Style: st})
		}
	}
	if len(bars) == 0 {
		return errNoPlottableRows
	}

	heights := make([]float64, len(bars))
	for i, b := range bars {
		heights[i] = b.Value
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   max(4, width/(2*len(bars)+1)),
		XAxis:      chart.Style{FontSize: 8},
		YAxis:      chart.YAxis{Name: cols.y.Name, Range: flatRange(heights)},
		Bars:       bars,
	}

	return bc.Render(chart.PNG, buf)
}
