package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/schedule"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ParseExportFormat accepts csv or pdf in any case.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw))
	}
}

// ContentType is the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders a composed week as CSV or PDF.
type ExportService struct {
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService. storage may be nil when
// files are only streamed.
func NewExportService(storage fileStorage, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = &export.CSVExporter{LineSeparator: " / "}
	}
	if pdf == nil {
		pdf = &export.PDFExporter{Orientation: "L"}
	}
	return &ExportService{storage: storage, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Render encodes grid in format.
func (s *ExportService) Render(grid *schedule.Grid, format ExportFormat, title string) ([]byte, error) {
	if grid == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "no grid to export")
	}
	dataset := GridDataset(grid)

	var (
		payload []byte
		err     error
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return payload, nil
}

// Save renders grid and writes it to storage. It returns the file path.
func (s *ExportService) Save(grid *schedule.Grid, format ExportFormat, title string) (string, error) {
	if s.storage == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "export storage not configured")
	}
	payload, err := s.Render(grid, format, title)
	if err != nil {
		return "", err
	}
	name, err := s.storage.Save(s.Filename(title, format), payload)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	path := s.storage.Path(name)
	s.logger.Info("grid exported", zap.String("path", path), zap.String("format", string(format)))
	return path, nil
}

// Filename builds a timestamped file name for an export.
func (s *ExportService) Filename(title string, format ExportFormat) string {
	base := strings.ToLower(strings.TrimSpace(title))
	if base == "" {
		base = "schedule"
	}
	return fmt.Sprintf("%s_%s.%s", base, s.now().Format("20060102_150405"), format)
}

// GridDataset flattens a grid into one row per period with one column per
// weekday. Occupied cells carry their tier colour.
func GridDataset(grid *schedule.Grid) export.Dataset {
	headers := make([]string, 0, len(models.Weekdays)+1)
	headers = append(headers, "Period")
	for _, day := range models.Weekdays {
		headers = append(headers, day.String())
	}

	rows := grid.Rows()
	dataset := export.Dataset{
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(rows)),
		Fills:   make([]map[string]export.Fill, 0, len(rows)),
	}
	for i, cells := range rows {
		row := map[string]string{"Period": strconv.Itoa(i + 1)}
		fills := map[string]export.Fill{}
		for _, cell := range cells {
			column := cell.Slot.Day.String()
			row[column] = cell.Text()
			if !cell.Empty() {
				c := cell.Tier.Color()
				fills[column] = export.Fill{R: int(c.R), G: int(c.G), B: int(c.B)}
			}
		}
		dataset.Rows = append(dataset.Rows, row)
		dataset.Fills = append(dataset.Fills, fills)
	}
	return dataset
}
