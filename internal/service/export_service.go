package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/studentpro/studentpro-api/internal/models"
	appErrors "github.com/studentpro/studentpro-api/pkg/errors"
	"github.com/studentpro/studentpro-api/pkg/export"
)

// rosterHeaders is the fixed column order of the roster exports.
var rosterHeaders = []string{"Name", "Email", "Course", "Age", "Roll No", "Phone", "Department", "GPA", "Skills", "Achievements", "Portfolio"}

type studentProvider interface {
	Collection(ctx context.Context) ([]models.Student, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders the full collection into downloadable artifacts and
// aggregates the department summary for the chart.
type ExportService struct {
	students studentProvider
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(students studentProvider, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{students: students, csv: csv, pdf: pdf, logger: logger}
}

// RosterCSV serializes the full, unfiltered collection.
func (s *ExportService) RosterCSV(ctx context.Context) ([]byte, error) {
	dataset, err := s.rosterDataset(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return payload, nil
}

// RosterPDF renders the full collection as a tabular PDF.
func (s *ExportService) RosterPDF(ctx context.Context) ([]byte, error) {
	dataset, err := s.rosterDataset(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := s.pdf.Render(*dataset, "Student Roster")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return payload, nil
}

// DepartmentSummary counts records per department in first-seen order.
// Records without a department land in the "Unknown" bucket.
func (s *ExportService) DepartmentSummary(ctx context.Context) (*models.DepartmentSummary, error) {
	students, _, err := s.students.Collection(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	summary := &models.DepartmentSummary{Labels: []string{}, Counts: []int{}}
	index := make(map[string]int)
	for _, s := range students {
		dept := s.Department
		if dept == "" {
			dept = "Unknown"
		}
		i, seen := index[dept]
		if !seen {
			index[dept] = len(summary.Labels)
			summary.Labels = append(summary.Labels, dept)
			summary.Counts = append(summary.Counts, 1)
			continue
		}
		summary.Counts[i]++
	}
	return summary, nil
}

func (s *ExportService) rosterDataset(ctx context.Context) (*export.Dataset, error) {
	students, _, err := s.students.Collection(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		row := map[string]string{
			"Name":         st.Name,
			"Email":        st.Email,
			"Course":       st.Course,
			"Roll No":      st.RollNumber,
			"Phone":        st.Phone,
			"Department":   st.Department,
			"Skills":       st.Skills,
			"Achievements": st.Achievements,
			"Portfolio":    st.Portfolio,
		}
		if st.Age != nil {
			row["Age"] = strconv.Itoa(*st.Age)
		}
		if st.GPA != nil {
			row["GPA"] = strconv.FormatFloat(*st.GPA, 'f', -1, 64)
		}
		rows = append(rows, row)
	}
	return &export.Dataset{Headers: rosterHeaders, Rows: rows}, nil
}
