package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentpro/studentpro-api/internal/models"
)

type fakeExportSrv struct {
	csv     []byte
	pdf     []byte
	summary *models.DepartmentSummary
	err     error
}

func (f *fakeExportSrv) RosterCSV(context.Context) ([]byte, error) { return f.csv, f.err }
func (f *fakeExportSrv) RosterPDF(context.Context) ([]byte, error) { return f.pdf, f.err }
func (f *fakeExportSrv) DepartmentSummary(context.Context) (*models.DepartmentSummary, error) {
	return f.summary, f.err
}

func TestExportHandlerCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportSrv{csv: []byte("Name,Email\n")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/export/csv", nil)

	h.CSV(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "students.csv")
	assert.Equal(t, "Name,Email\n", rec.Body.String())
}

func TestExportHandlerPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportSrv{pdf: []byte("%PDF-1.4")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/export/pdf", nil)

	h.PDF(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestExportHandlerDepartments(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportSrv{summary: &models.DepartmentSummary{
		Labels: []string{"CS", "Unknown"},
		Counts: []int{2, 1},
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/summary/departments", nil)

	h.Departments(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var summary models.DepartmentSummary
	require.NoError(t, json.Unmarshal(envelope.Data, &summary))
	assert.Equal(t, []string{"CS", "Unknown"}, summary.Labels)
	assert.Equal(t, []int{2, 1}, summary.Counts)
}
