package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/goviz/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goviz/internal/viz/entity"
	"github.com/shandysiswandi/goviz/internal/viz/usecase"
	"golang.org/x/time/rate"
)

type uc interface {
	Upload(ctx context.Context, in entity.UploadedFile) (usecase.UploadResult, error)
	Chart(ctx context.Context, in usecase.ChartInput) (usecase.ChartSpec, error)
	Export(ctx context.Context, in usecase.ChartInput) ([]byte, error)
}

// Options tunes the HTTP surface. Zero values disable the respective limit.
type Options struct {
	MaxUploadBytes int64
	UploadLimiter  *rate.Limiter
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, opt Options) {
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: opt.MaxUploadBytes}

	r.Handle(http.MethodGet, "/", newPage(opt.MaxUploadBytes))

	r.POST("/api/upload", end.Upload, pkgrouter.RateLimit(opt.UploadLimiter))
	r.POST("/api/chart", end.Chart)
	r.POST("/api/chart/png", end.ChartPNG)
}
