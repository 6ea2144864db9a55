package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentpro/studentpro-api/internal/models"
	"github.com/studentpro/studentpro-api/pkg/response"
)

type exportService interface {
	RosterCSV(ctx context.Context) ([]byte, error)
	RosterPDF(ctx context.Context) ([]byte, error)
	DepartmentSummary(ctx context.Context) (*models.DepartmentSummary, error)
}

// ExportHandler exposes roster exports and the department summary.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// CSV godoc
// @Summary Export the full roster as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Router /students/export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	payload, err := h.exports.RosterCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="students.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// PDF godoc
// @Summary Export the full roster as PDF
// @Tags Exports
// @Produce application/pdf
// @Success 200 {string} string "PDF file"
// @Router /students/export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	payload, err := h.exports.RosterPDF(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="students.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

// Departments godoc
// @Summary Department headcount summary for chart rendering
// @Tags Exports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/summary/departments [get]
func (h *ExportHandler) Departments(c *gin.Context) {
	summary, err := h.exports.DepartmentSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
