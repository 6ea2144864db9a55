package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studentpro/studentpro-api/internal/models"
)

type staticProvider struct {
	students []models.Student
	err      error
}

func (p *staticProvider) Collection(ctx context.Context) ([]models.Student, bool, error) {
	return p.students, false, p.err
}

func TestExportServiceRosterCSV(t *testing.T) {
	age := 21
	gpa := 3.5
	provider := &staticProvider{students: []models.Student{
		{Name: "Jane Doe", Email: "jane@example.com", Course: "CS", Age: &age, GPA: &gpa, Department: "Engineering"},
		{Name: "No Extras", Email: "none@example.com"},
	}}
	svc := NewExportService(provider, nil, nil, zap.NewNop())

	payload, err := svc.RosterCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Email,Course,Age,Roll No,Phone,Department,GPA,Skills,Achievements,Portfolio", lines[0])
	assert.Equal(t, `"Jane Doe","jane@example.com","CS","21","","","Engineering","3.5","","",""`, lines[1])
	assert.Equal(t, `"No Extras","none@example.com","","","","","","","","",""`, lines[2])
}

func TestExportServiceRosterCSVEmptyCollection(t *testing.T) {
	svc := NewExportService(&staticProvider{}, nil, nil, zap.NewNop())

	payload, err := svc.RosterCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Name,Email"))
}

func TestExportServiceRosterPDF(t *testing.T) {
	provider := &staticProvider{students: []models.Student{{Name: "Jane", Email: "j@example.com"}}}
	svc := NewExportService(provider, nil, nil, zap.NewNop())

	payload, err := svc.RosterPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportServiceDepartmentSummary(t *testing.T) {
	provider := &staticProvider{students: []models.Student{
		{Name: "A", Department: "CS"},
		{Name: "B", Department: "CS"},
		{Name: "C"},
		{Name: "D", Department: "Math"},
	}}
	svc := NewExportService(provider, nil, nil, zap.NewNop())

	summary, err := svc.DepartmentSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CS", "Unknown", "Math"}, summary.Labels)
	assert.Equal(t, []int{2, 1, 1}, summary.Counts)
}

func TestExportServiceDepartmentSummaryEmpty(t *testing.T) {
	svc := NewExportService(&staticProvider{}, nil, nil, zap.NewNop())

	summary, err := svc.DepartmentSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Labels)
	assert.Empty(t, summary.Counts)
}
