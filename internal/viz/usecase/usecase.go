package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/goviz/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goviz/internal/pkg/pkguid"
	"github.com/shandysiswandi/goviz/internal/viz/entity"
)

const (
	msgUnsupportedFormat = "Please upload a CSV or Excel (.xlsx) file."
	msgProcessingError   = "There was an error processing this file. Please check file format."
	msgRenderError       = "The chart could not be rendered as an image."
)

type Store interface {
	Serialize(table entity.Table) (entity.SerializedTable, error)
	Deserialize(data entity.SerializedTable) (entity.Table, bool, error)
}

type Runner interface {
	Do(ctx context.Context, f func(ctx context.Context) error) error
}

type Dependency struct {
	Store        Store
	Runner       Runner
	ID           pkguid.NumberID
	PreviewRows  int
	ExportWidth  int
	ExportHeight int
}

type Usecase struct {
	store        Store
	runner       Runner
	id           pkguid.NumberID
	previewRows  int
	exportWidth  int
	exportHeight int
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		store:        dep.Store,
		runner:       dep.Runner,
		id:           dep.ID,
		previewRows:  dep.PreviewRows,
		exportWidth:  dep.ExportWidth,
		exportHeight: dep.ExportHeight,
	}
}

// Upload decodes the file, renders its preview and serializes the table for
// the client-held store. On any failure the caller gets no store and no
// options, only the error message.
func (u *Usecase) Upload(ctx context.Context, in entity.UploadedFile) (UploadResult, error) {
	if u.store == nil || u.runner == nil || u.id == nil {
		return UploadResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	uploadID := pkguid.FormatID(u.id.Generate())

	var table entity.Table
	err := u.runner.Do(ctx, func(ctx context.Context) error {
		var perr error
		table, perr = parseTable(ctx, in.Filename, in.Data)
		return perr
	})
	if err != nil {
		return UploadResult{}, mapParseErr(ctx, uploadID, in.Filename, err)
	}

	store, err := u.store.Serialize(table)
	if err != nil {
		return UploadResult{}, pkgerror.NewServer(err)
	}

	slog.InfoContext(ctx, "upload processed",
		"upload_id", uploadID,
		"filename", in.Filename,
		"rows", table.NumRows(),
		"columns", table.NumColumns(),
	)

	return UploadResult{
		UploadID:     uploadID,
		Preview:      renderPreview(table, in.Filename, in.LastModified, u.previewRows),
		Store:        store,
		XOptions:     columnOptions(table),
		YOptions:     columnOptions(table),
		ColorOptions: columnOptions(table),
	}, nil
}

// Chart rebuilds the chart from the dropdown state and the client-held store.
func (u *Usecase) Chart(ctx context.Context, in ChartInput) (ChartSpec, error) {
	table, err := u.loadTable(in.Store)
	if err != nil {
		return ChartSpec{}, err
	}

	spec, err := buildChart(in.Selection, table)
	if err != nil {
		return ChartSpec{}, mapChartErr(ctx, err)
	}

	return spec, nil
}

// Export renders the same chart as Chart to a PNG image.
func (u *Usecase) Export(ctx context.Context, in ChartInput) ([]byte, error) {
	if u.runner == nil {
		return nil, pkgerror.NewServer(errors.New("missing dependency"))
	}

	table, err := u.loadTable(in.Store)
	if err != nil {
		return nil, err
	}

	var img []byte
	err = u.runner.Do(ctx, func(context.Context) error {
		var rerr error
		img, rerr = exportChart(in.Selection, table, u.exportWidth, u.exportHeight)
		return rerr
	})
	if err != nil {
		return nil, mapExportErr(ctx, err)
	}

	return img, nil
}

// loadTable returns nil when the store holds no data yet.
func (u *Usecase) loadTable(data entity.SerializedTable) (*entity.Table, error) {
	if u.store == nil {
		return nil, pkgerror.NewServer(errors.New("missing dependency"))
	}

	table, ok, err := u.store.Deserialize(data)
	if err != nil {
		return nil, pkgerror.NewInvalidInput(err)
	}
	if !ok {
		return nil, nil
	}

	return &table, nil
}

func mapParseErr(ctx context.Context, uploadID, filename string, err error) error {
	switch {
	case errors.Is(err, entity.ErrUnsupportedFormat):
		slog.WarnContext(ctx, "unsupported upload", "upload_id", uploadID, "filename", filename)
		return pkgerror.WrapBusiness(err, msgUnsupportedFormat, pkgerror.CodeUnsupportedFormat)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pkgerror.NewServer(err)
	default:
		slog.WarnContext(ctx, "upload rejected", "upload_id", uploadID, "filename", filename, "error", err)
		return pkgerror.WrapBusiness(err, msgProcessingError, pkgerror.CodeInvalidFormat)
	}
}

func mapExportErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pkgerror.NewServer(err)
	case errors.Is(err, errIncompleteSelection), errors.Is(err, errUnknownPlotType),
		errors.Is(err, errNoPlottableRows), errors.Is(err, errContinuousAxes):
		return pkgerror.NewInvalidInput(err)
	}

	var notFound *entity.ColumnNotFoundError
	if errors.As(err, &notFound) {
		return mapChartErr(ctx, err)
	}

	slog.WarnContext(ctx, "chart export failed", "error", err)
	return pkgerror.WrapBusiness(err, msgRenderError, pkgerror.CodeInvalidInput)
}

func mapChartErr(ctx context.Context, err error) error {
	var notFound *entity.ColumnNotFoundError
	if errors.As(err, &notFound) {
		slog.WarnContext(ctx, "chart references missing column", "column", notFound.Column)
		return pkgerror.WrapBusiness(err, notFound.Error(), pkgerror.CodeNotFound)
	}
	return pkgerror.NewInvalidInput(err)
}
