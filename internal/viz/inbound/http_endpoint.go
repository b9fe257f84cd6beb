package inbound

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shandysiswandi/goviz/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goviz/internal/viz/entity"
	"github.com/shandysiswandi/goviz/internal/viz/usecase"
)

var (
	errFileRequired = errors.New("file part is required")
	errBadDataURL   = errors.New("contents must be a base64 data URL")
)

type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

// Upload accepts either a multipart form with a "file" part or a JSON body
// carrying the file as a data URL.
func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)
	}

	var (
		file entity.UploadedFile
		err  error
	)
	switch mediaType(r) {
	case "multipart/form-data":
		file, err = extractMultipartFile(r)
	case "application/json":
		file, err = extractJSONFile(r)
	default:
		return nil, pkgerror.NewInvalidFormat()
	}
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Upload(ctx, file)
	if err != nil {
		return nil, err
	}

	return UploadResponse{
		UploadID:     result.UploadID,
		Preview:      toHTTPPreview(result.Preview),
		Store:        string(result.Store),
		XOptions:     toHTTPOptions(result.XOptions),
		YOptions:     toHTTPOptions(result.YOptions),
		ColorOptions: toHTTPOptions(result.ColorOptions),
	}, nil
}

func (h *HTTPEndpoint) Chart(ctx context.Context, r *http.Request) (any, error) {
	in, err := decodeChartRequest(r)
	if err != nil {
		return nil, err
	}

	spec, err := h.uc.Chart(ctx, in)
	if err != nil {
		return nil, err
	}

	return ChartResponse{
		Title:  spec.Title,
		Kind:   string(spec.Kind),
		Option: spec.Option,
	}, nil
}

func (h *HTTPEndpoint) ChartPNG(ctx context.Context, r *http.Request) (any, error) {
	in, err := decodeChartRequest(r)
	if err != nil {
		return nil, err
	}

	img, err := h.uc.Export(ctx, in)
	if err != nil {
		return nil, err
	}

	return PNGResponse{data: img}, nil
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func decodeChartRequest(r *http.Request) (usecase.ChartInput, error) {
	if r.Body == nil {
		return usecase.ChartInput{}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	var req ChartRequest
	if err := sonic.ConfigStd.NewDecoder(r.Body).Decode(&req); err != nil {
		return usecase.ChartInput{}, pkgerror.NewInvalidFormat()
	}

	plotType := entity.PlotType(strings.TrimSpace(req.PlotType))
	if plotType == "" {
		plotType = entity.PlotScatter
	}

	return usecase.ChartInput{
		Selection: usecase.Selection{
			X:        req.X,
			Y:        req.Y,
			Color:    req.Color,
			PlotType: plotType,
		},
		Store: entity.SerializedTable(req.Store),
	}, nil
}

func extractMultipartFile(r *http.Request) (entity.UploadedFile, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return entity.UploadedFile{}, pkgerror.NewInvalidFormat()
	}

	var (
		file  entity.UploadedFile
		found bool
	)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.UploadedFile{}, mapBodyErr(err)
		}

		switch part.FormName() {
		case "file":
			file.Filename = part.FileName()
			file.Data, err = io.ReadAll(part)
			found = true
		case "last_modified":
			var raw []byte
			raw, err = io.ReadAll(part)
			if err == nil {
				file.LastModified = parseMillis(string(raw))
			}
		}
		_ = part.Close()
		if err != nil {
			return entity.UploadedFile{}, mapBodyErr(err)
		}
	}

	if !found {
		return entity.UploadedFile{}, pkgerror.NewInvalidInput(errFileRequired)
	}

	return file, nil
}

func extractJSONFile(r *http.Request) (entity.UploadedFile, error) {
	var req UploadRequest
	if err := sonic.ConfigStd.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return entity.UploadedFile{}, mapBodyErr(err)
		}
		return entity.UploadedFile{}, pkgerror.NewInvalidFormat()
	}

	if req.Contents == "" {
		return entity.UploadedFile{}, pkgerror.NewInvalidInput(errFileRequired)
	}

	data, err := decodeDataURL(req.Contents)
	if err != nil {
		return entity.UploadedFile{}, pkgerror.NewInvalidInput(err)
	}

	file := entity.UploadedFile{Filename: req.Filename, Data: data}
	if req.LastModified > 0 {
		file.LastModified = time.UnixMilli(req.LastModified).UTC()
	}

	return file, nil
}

// decodeDataURL accepts "data:<mime>;base64,<payload>".
func decodeDataURL(contents string) ([]byte, error) {
	header, payload, ok := strings.Cut(contents, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, errBadDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errBadDataURL
	}

	return data, nil
}

func parseMillis(raw string) time.Time {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func mapBodyErr(err error) error {
	var mbe *http.MaxBytesError
	// mime/multipart does not always wrap the reader error with %w.
	if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
		return pkgerror.WrapBusiness(err, "uploaded file is too large", pkgerror.CodeTooLarge)
	}
	return pkgerror.NewInvalidFormat()
}
