package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/delci/zapatos-api/internal/core/ports/services"
	"github.com/delci/zapatos-api/internal/middleware"
)

// reportingHandler handles HTTP requests for the dashboard.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the dashboard routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.dashboardSummary)
	}
}

// dashboardSummary godoc
// @Summary Dashboard summary
// @Description Returns the stock, pending-account, client and payment-alert counters for the home screen
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.DashboardSummary
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboardSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.DashboardSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
