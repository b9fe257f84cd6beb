package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/gabriel-vasile/mimetype"
	"github.com/shandysiswandi/goviz/internal/viz/entity"
	"github.com/xuri/excelize/v2"
)

var (
	errEmptyFile   = errors.New("no columns to parse from file")
	errInvalidUTF8 = errors.New("file is not valid UTF-8 text")
	errNoSheet     = errors.New("workbook has no sheets")
)

//nolint:gochecknoglobals // lookup table
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

//nolint:gochecknoglobals // lookup table
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// detectFormat sniffs the format from the filename only. Matching is a plain
// substring check, so "report.xlsx" and "mycsvfile.txt" are both accepted.
func detectFormat(filename string) (entity.Format, error) {
	switch {
	case strings.Contains(filename, "csv"):
		return entity.FormatCSV, nil
	case strings.Contains(filename, "xls"):
		return entity.FormatExcel, nil
	default:
		return "", entity.ErrUnsupportedFormat
	}
}

func parseTable(ctx context.Context, filename string, data []byte) (entity.Table, error) {
	format, err := detectFormat(filename)
	if err != nil {
		return entity.Table{}, err
	}

	var records [][]string
	switch format {
	case entity.FormatCSV:
		records, err = readCSV(data)
	case entity.FormatExcel:
		records, err = readWorkbook(data)
	}
	if err == nil {
		var table entity.Table
		table, err = buildTable(records)
		if err == nil {
			return table, nil
		}
	}

	return entity.Table{}, &entity.ParseError{Format: format, Err: err}
}

func readCSV(data []byte) ([][]string, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return records, nil
}

func readWorkbook(data []byte) ([][]string, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/vnd.ms-excel"), m.Is("application/x-ole-storage"):
			return readXLS(data)
		case m.Is("application/zip"):
			return readXLSX(data)
		}
	}

	return nil, fmt.Errorf("unrecognized workbook content %q", mt.String())
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	restoreXLSXDates(f, sheets[0], rows, raw)
	return rows, nil
}

// restoreXLSXDates replaces the display text of date-formatted cells, which
// follows the workbook locale (e.g. "1/2/24"), with an ISO timestamp built
// from the stored serial number.
func restoreXLSXDates(f *excelize.File, sheet string, rows, raw [][]string) {
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	isDate := map[int]bool{}
	for r := range rows {
		if r >= len(raw) {
			break
		}
		for c := range rows[r] {
			if c >= len(raw[r]) {
				break
			}
			serial, err := strconv.ParseFloat(raw[r][c], 64)
			if err != nil {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil || styleID == 0 {
				continue
			}

			date, seen := isDate[styleID]
			if !seen {
				date = dateStyle(f, styleID)
				isDate[styleID] = date
			}
			if !date {
				continue
			}

			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			rows[r][c] = t.Round(time.Second).Format("2006-01-02T15:04:05")
		}
	}
}

// dateStyle reports whether the style formats numbers as a calendar date.
// Time-of-day only formats are left as displayed.
func dateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}

	if style.CustomNumFmt != nil {
		return customDateFormat(*style.CustomNumFmt)
	}

	switch n := style.NumFmt; {
	case n >= 14 && n <= 17, n == 22:
		return true
	case n >= 27 && n <= 36, n >= 50 && n <= 58:
		return true
	default:
		return false
	}
}

func customDateFormat(format string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range format {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}

	plain := strings.ToLower(b.String())
	return strings.ContainsAny(plain, "yd")
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheet
	}

	records := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}

		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		records = append(records, cells)
	}

	for len(records) > 0 && isBlankRecord(records[len(records)-1]) {
		records = records[:len(records)-1]
	}

	return records, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// buildTable treats the first record as the header and infers a kind per
// column from the remaining records.
func buildTable(records [][]string) (entity.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return entity.Table{}, errEmptyFile
	}

	names := headerNames(records[0])
	body := records[1:]

	table := entity.Table{Columns: make([]entity.Column, len(names))}
	raw := make([]string, len(body))
	for j, name := range names {
		for i, record := range body {
			raw[i] = ""
			if j < len(record) {
				raw[i] = record[j]
			}
		}
		table.Columns[j] = inferColumn(name, raw)
	}

	return table, nil
}

func headerNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	dups := make(map[string]int)

	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		base := name
		for used[name] {
			dups[base]++
			name = fmt.Sprintf("%s.%d", base, dups[base])
		}
		used[name] = true
		names[i] = name
	}

	return names
}

func isNA(cell string) bool {
	_, ok := naValues[strings.TrimSpace(cell)]
	return ok
}

// inferColumn picks the narrowest kind that every non-null cell satisfies:
// int64, float64, bool, datetime, then string.
func inferColumn(name string, raw []string) entity.Column {
	col := entity.Column{Name: name, Values: make([]any, len(raw))}

	switch nonNull := countNonNull(raw); {
	case len(raw) == 0:
		col.Kind = entity.KindString
		return col
	case nonNull == 0:
		col.Kind = entity.KindFloat
		return col
	}

	for _, kind := range []entity.Kind{entity.KindInt, entity.KindFloat, entity.KindBool, entity.KindTime} {
		if convertAll(raw, col.Values, kind) {
			col.Kind = kind
			return col
		}
	}

	col.Kind = entity.KindString
	for i, cell := range raw {
		if isNA(cell) {
			col.Values[i] = nil
			continue
		}
		col.Values[i] = cell
	}

	return col
}

func countNonNull(raw []string) int {
	n := 0
	for _, cell := range raw {
		if !isNA(cell) {
			n++
		}
	}
	return n
}

func convertAll(raw []string, out []any, kind entity.Kind) bool {
	for i, cell := range raw {
		if isNA(cell) {
			out[i] = nil
			continue
		}

		v, ok := convertCell(strings.TrimSpace(cell), kind)
		if !ok {
			return false
		}
		out[i] = v
	}
	return true
}

func convertCell(cell string, kind entity.Kind) (any, bool) {
	switch kind {
	case entity.KindInt:
		v, err := strconv.ParseInt(cell, 10, 64)
		return v, err == nil
	case entity.KindFloat:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, true
		}
		return v, true
	case entity.KindBool:
		switch {
		case strings.EqualFold(cell, "true"):
			return true, true
		case strings.EqualFold(cell, "false"):
			return false, true
		}
		return nil, false
	case entity.KindTime:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, cell); err == nil {
				return t.UTC(), true
			}
		}
		return nil, false
	default:
		return cell, true
	}
}
