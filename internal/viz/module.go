package viz

import (
	"github.com/shandysiswandi/goviz/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goviz/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goviz/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/goviz/internal/pkg/pkguid"
	"github.com/shandysiswandi/goviz/internal/viz/inbound"
	"github.com/shandysiswandi/goviz/internal/viz/store"
	"github.com/shandysiswandi/goviz/internal/viz/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	ID        pkguid.NumberID
}

func New(dep Dependency) error {
	uc := usecase.New(usecase.Dependency{
		Store:        store.NewCodec(),
		Runner:       dep.Goroutine,
		ID:           dep.ID,
		PreviewRows:  int(dep.Config.GetInt("modules.viz.preview.rows")),
		ExportWidth:  int(dep.Config.GetInt("modules.viz.export.width")),
		ExportHeight: int(dep.Config.GetInt("modules.viz.export.height")),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Options{
		MaxUploadBytes: dep.Config.GetInt("modules.viz.upload.max_bytes"),
		UploadLimiter: pkgrouter.NewLimiter(
			dep.Config.GetFloat("server.rate_limit.rps"),
			int(dep.Config.GetInt("server.rate_limit.burst")),
		),
	})

	return nil
}
