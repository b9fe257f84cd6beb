package inbound

import "github.com/shandysiswandi/goviz/internal/viz/usecase"

type UploadRequest struct {
	Contents     string `json:"contents"`
	Filename     string `json:"filename"`
	LastModified int64  `json:"last_modified"`
}

type ChartRequest struct {
	X        string `json:"x"`
	Y        string `json:"y"`
	Color    string `json:"color"`
	PlotType string `json:"plot_type"`
	Store    string `json:"store"`
}

type Preview struct {
	Filename     string     `json:"filename"`
	LastModified string     `json:"last_modified"`
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
	RowCount     int        `json:"row_count"`
	ColumnCount  int        `json:"column_count"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type UploadResponse struct {
	UploadID     string   `json:"upload_id"`
	Preview      Preview  `json:"preview"`
	Store        string   `json:"store"`
	XOptions     []Option `json:"x_options"`
	YOptions     []Option `json:"y_options"`
	ColorOptions []Option `json:"color_options"`
}

func (UploadResponse) Message() string {
	return "upload processed"
}

type ChartResponse struct {
	Title  string         `json:"title"`
	Kind   string         `json:"kind"`
	Option map[string]any `json:"option"`
}

// PNGResponse is written raw by the router instead of the JSON envelope.
type PNGResponse struct {
	data []byte
}

func (PNGResponse) ContentType() string {
	return "image/png"
}

func (p PNGResponse) Bytes() []byte {
	return p.data
}

func toHTTPPreview(p usecase.Preview) Preview {
	return Preview{
		Filename:     p.Filename,
		LastModified: p.LastModified,
		Columns:      p.Columns,
		Rows:         p.Rows,
		RowCount:     p.RowCount,
		ColumnCount:  p.ColumnCount,
	}
}

func toHTTPOptions(in []usecase.ColumnOption) []Option {
	out := make([]Option, 0, len(in))
	for _, o := range in {
		out = append(out, Option{Label: o.Label, Value: o.Value})
	}
	return out
}
