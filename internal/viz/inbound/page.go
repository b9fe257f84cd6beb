package inbound

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/goviz/internal/viz/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

//nolint:gochecknoglobals // parsed once at init
var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type plotTypeView struct {
	Value string
	Label string
}

type pageView struct {
	Heading        string
	MaxUploadBytes int64
	PlotTypes      []plotTypeView
	DefaultPlot    string
}

// newPage renders the single page once and serves the cached bytes.
func newPage(maxUploadBytes int64) http.Handler {
	view := pageView{
		Heading:        "Data Visualization Project",
		MaxUploadBytes: maxUploadBytes,
		DefaultPlot:    string(entity.PlotScatter),
	}
	for _, p := range entity.PlotTypes() {
		view.PlotTypes = append(view.PlotTypes, plotTypeView{Value: string(p), Label: p.Label()})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		slog.Error("failed to render page template", "error", err)
	}
	body := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			slog.WarnContext(r.Context(), "failed to write page", "error", err)
		}
	})
}
