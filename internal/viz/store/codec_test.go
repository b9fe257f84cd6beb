package store

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/goviz/internal/viz/entity"
)

func sampleTable() entity.Table {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC)
	return entity.Table{Columns: []entity.Column{
		{Name: "id", Kind: entity.KindInt, Values: []any{int64(1), nil, int64(9007199254740993)}},
		{Name: "score", Kind: entity.KindFloat, Values: []any{1.5, nil, 2.0}},
		{Name: "ok", Kind: entity.KindBool, Values: []any{true, false, nil}},
		{Name: "when", Kind: entity.KindTime, Values: []any{ts, nil, ts.Add(time.Hour)}},
		{Name: "name", Kind: entity.KindString, Values: []any{"a", "", nil}},
	}}
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec()
	in := sampleTable()

	data, err := codec.Serialize(in)
	if err != nil {
		t.Fatalf("Serialize() err = %v", err)
	}

	out, ok, err := codec.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize() err = %v", err)
	}
	if !ok {
		t.Fatal("Deserialize() ok = false, want true")
	}

	if !reflect.DeepEqual(out, in) {
		t.Fatalf("round trip mismatch\n got: %#v\nwant: %#v", out, in)
	}
}

func TestCodec_SerializeShape(t *testing.T) {
	t.Parallel()

	table := entity.Table{Columns: []entity.Column{
		{Name: "x", Kind: entity.KindFloat, Values: []any{math.NaN(), 3.0}},
	}}

	data, err := NewCodec().Serialize(table)
	if err != nil {
		t.Fatalf("Serialize() err = %v", err)
	}

	got := string(data)
	for _, want := range []string{`"columns":["x"]`, `"dtypes":["float64"]`, `"index":[0,1]`, `"data":[[null,3]]`} {
		if !strings.Contains(got, want) {
			t.Fatalf("Serialize() = %s, missing %s", got, want)
		}
	}
}

func TestCodec_DeserializeEmptyStore(t *testing.T) {
	t.Parallel()

	for _, in := range []entity.SerializedTable{"", "{}", "null", "  "} {
		_, ok, err := NewCodec().Deserialize(in)
		if err != nil {
			t.Fatalf("Deserialize(%q) err = %v", in, err)
		}
		if ok {
			t.Fatalf("Deserialize(%q) ok = true, want false", in)
		}
	}
}

func TestCodec_DeserializeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   entity.SerializedTable
		want error
	}{
		{name: "not json", in: "oops", want: ErrMalformed},
		{name: "missing data", in: `{"columns":["a"],"dtypes":["int64"],"index":[0],"data":[]}`, want: ErrMalformed},
		{name: "unknown dtype", in: `{"columns":["a"],"dtypes":["complex"],"index":[0],"data":[[1]]}`, want: ErrMalformed},
		{name: "wrong cell type", in: `{"columns":["a"],"dtypes":["int64"],"index":[0],"data":[["x"]]}`, want: ErrMalformed},
		{name: "bad time", in: `{"columns":["a"],"dtypes":["datetime"],"index":[0],"data":[["yesterday"]]}`, want: ErrMalformed},
		{name: "short column", in: `{"columns":["a"],"dtypes":["int64"],"index":[0,1],"data":[[1]]}`, want: ErrLengthMismatch},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok, err := NewCodec().Deserialize(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Deserialize() err = %v, want %v", err, tt.want)
			}
			if ok {
				t.Fatal("Deserialize() ok = true on error")
			}
		})
	}
}

func TestCodec_SerializeRejectsRaggedTable(t *testing.T) {
	t.Parallel()

	table := entity.Table{Columns: []entity.Column{
		{Name: "a", Kind: entity.KindInt, Values: []any{int64(1), int64(2)}},
		{Name: "b", Kind: entity.KindInt, Values: []any{int64(1)}},
	}}

	if _, err := NewCodec().Serialize(table); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("Serialize() err = %v, want %v", err, ErrLengthMismatch)
	}
}
