package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studentpro/studentpro-api/internal/middleware"
	"github.com/studentpro/studentpro-api/internal/view"
	appErrors "github.com/studentpro/studentpro-api/pkg/errors"
	"github.com/studentpro/studentpro-api/pkg/response"
)

type dashboardService interface {
	View(ctx context.Context, cfg *view.Config, origin string) (*view.Rendered, bool, error)
	DefaultPageSize() int
}

// DashboardHandler serves the server-derived record view consumed by the
// browser dashboard.
type DashboardHandler struct {
	dashboard dashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// View godoc
// @Summary Derive the visible record page
// @Tags Dashboard
// @Produce json
// @Param search query string false "Free-text filter"
// @Param sort query string false "Sort field (name or age)"
// @Param dir query string false "Sort direction (asc or desc)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students/view [get]
func (h *DashboardHandler) View(c *gin.Context) {
	cfg := view.NewConfig(h.dashboard.DefaultPageSize())
	cfg.SetSearch(c.Query("search"))

	switch sort := strings.ToLower(c.Query("sort")); sort {
	case string(view.SortNone):
	case string(view.SortName):
		cfg.SortBy = view.SortName
	case string(view.SortAge):
		cfg.SortBy = view.SortAge
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "sort must be name or age"))
		return
	}
	if dir := strings.ToLower(c.Query("dir")); dir == string(view.SortDesc) {
		cfg.SortDir = view.SortDesc
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		cfg.SetPageSize(limit)
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		cfg.GotoPage(page)
	}

	rendered, cacheHit, err := h.dashboard.View(c.Request.Context(), &cfg, requestOrigin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, rendered, nil, middleware.ExtractMeta(c))
}

func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
