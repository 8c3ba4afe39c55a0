package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
	"github.com/psgrkcw/faculty-portal-api/pkg/export"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

type exportClassRepository interface {
	GetClass(ctx context.Context, id string) (*models.Class, error)
	ListStudents(ctx context.Context, classID string) ([]models.Student, error)
}

// ExportFile is a rendered roster ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders a class roster snapshot into a downloadable file. The
// snapshot follows the class's column list at export time; student payload
// keys outside that list are dropped and missing keys render as empty cells.
type ExportService struct {
	repo   exportClassRepository
	xlsx   *export.XLSXExporter
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(repo exportClassRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		repo:   repo,
		xlsx:   export.NewXLSXExporter(),
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ExportClass renders the roster in the requested format. An empty format
// defaults to xlsx; unknown formats are rejected.
func (s *ExportService) ExportClass(ctx context.Context, classID, format string) (*ExportFile, error) {
	if format == "" {
		format = FormatXLSX
	}
	format = strings.ToLower(format)
	if format != FormatXLSX && format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	class, err := s.repo.GetClass(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	if len(class.Columns) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class has no columns to export")
	}

	students, err := s.repo.ListStudents(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	dataset := buildDataset(class.Columns, students)

	var content []byte
	var contentType, ext string
	switch format {
	case FormatCSV:
		content, err = s.csv.Render(dataset)
		contentType, ext = "text/csv", "csv"
	case FormatPDF:
		content, err = s.pdf.Render(dataset, class.Name)
		contentType, ext = "application/pdf", "pdf"
	default:
		content, err = s.xlsx.Render(dataset)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("roster exported",
		zap.String("class_id", classID),
		zap.String("format", format),
		zap.Int("students", len(students)))

	return &ExportFile{
		Filename:    "students." + ext,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// buildDataset projects student payloads onto the class columns. Headers are
// uppercased for the rendered file while lookups use the original keys.
func buildDataset(columns []string, students []models.Student) export.Dataset {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = strings.ToUpper(col)
	}

	rows := make([]map[string]string, 0, len(students))
	for _, student := range students {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[headers[i]] = student.Data[col]
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}
