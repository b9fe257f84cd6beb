package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shandysiswandi/goviz/internal/viz/entity"
)

var (
	ErrMalformed      = errors.New("malformed serialized table")
	ErrLengthMismatch = errors.New("serialized table column lengths do not match its index")
)

// payload is the column-major wire shape kept by the page between requests.
type payload struct {
	Columns []string          `json:"columns"`
	Dtypes  []entity.Kind     `json:"dtypes"`
	Index   []int             `json:"index"`
	Data    []json.RawMessage `json:"data"`
}

// Codec converts tables to and from the opaque text held in the browser
// session. The server keeps nothing between requests.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

// Serialize encodes table as JSON. Times are written as RFC 3339 in UTC and
// non-finite floats as null.
func (c *Codec) Serialize(table entity.Table) (entity.SerializedTable, error) {
	n := table.NumRows()
	p := payload{
		Columns: table.ColumnNames(),
		Dtypes:  make([]entity.Kind, 0, table.NumColumns()),
		Index:   make([]int, n),
		Data:    make([]json.RawMessage, 0, table.NumColumns()),
	}
	for i := range p.Index {
		p.Index[i] = i
	}

	for _, col := range table.Columns {
		if len(col.Values) != n {
			return "", fmt.Errorf("column %q: %w", col.Name, ErrLengthMismatch)
		}

		values := make([]any, n)
		for i, v := range col.Values {
			values[i] = encodeCell(v)
		}

		raw, err := sonic.Marshal(values)
		if err != nil {
			return "", fmt.Errorf("encode column %q: %w", col.Name, err)
		}

		p.Dtypes = append(p.Dtypes, col.Kind)
		p.Data = append(p.Data, raw)
	}

	out, err := sonic.Marshal(&p)
	if err != nil {
		return "", err
	}

	return entity.SerializedTable(out), nil
}

func encodeCell(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return val
	}
}

// Deserialize is the inverse of Serialize. An empty store ("", "{}" or
// "null") reports ok=false with no error.
func (c *Codec) Deserialize(data entity.SerializedTable) (entity.Table, bool, error) {
	switch strings.TrimSpace(string(data)) {
	case "", "{}", "null":
		return entity.Table{}, false, nil
	}

	var p payload
	if err := sonic.UnmarshalString(string(data), &p); err != nil {
		return entity.Table{}, false, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(p.Dtypes) != len(p.Columns) || len(p.Data) != len(p.Columns) {
		return entity.Table{}, false, fmt.Errorf("%w: %d columns, %d dtypes, %d data",
			ErrMalformed, len(p.Columns), len(p.Dtypes), len(p.Data))
	}

	table := entity.Table{Columns: make([]entity.Column, len(p.Columns))}
	for j, name := range p.Columns {
		values, err := decodeColumn(p.Dtypes[j], p.Data[j])
		if err != nil {
			return entity.Table{}, false, fmt.Errorf("column %q: %w", name, err)
		}
		if len(values) != len(p.Index) {
			return entity.Table{}, false, fmt.Errorf("column %q: %w", name, ErrLengthMismatch)
		}

		table.Columns[j] = entity.Column{Name: name, Kind: p.Dtypes[j], Values: values}
	}

	return table, true, nil
}

func decodeColumn(kind entity.Kind, raw json.RawMessage) ([]any, error) {
	switch kind {
	case entity.KindInt:
		return decodeTyped[int64](raw, nil)
	case entity.KindFloat:
		return decodeTyped[float64](raw, nil)
	case entity.KindBool:
		return decodeTyped[bool](raw, nil)
	case entity.KindString:
		return decodeTyped[string](raw, nil)
	case entity.KindTime:
		return decodeTyped(raw, func(s string) (any, error) {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, err
			}
			return t.UTC(), nil
		})
	default:
		return nil, fmt.Errorf("%w: unknown dtype %q", ErrMalformed, kind)
	}
}

// decodeTyped reads a JSON array of T-or-null. convert, when set, maps each
// non-null element to its cell value.
func decodeTyped[T any](raw json.RawMessage, convert func(T) (any, error)) ([]any, error) {
	var cells []*T
	if err := sonic.Unmarshal(raw, &cells); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	values := make([]any, len(cells))
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		if convert == nil {
			values[i] = *cell
			continue
		}

		v, err := convert(*cell)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i, err)
		}
		values[i] = v
	}

	return values, nil
}
