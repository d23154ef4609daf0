package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jraflores/tindahan-api/internal/application/service"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/response"
)

// ReportHandler handles daily report endpoints
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func parseReportDate(raw string) (string, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// Get handles GET /reports/:date. Returns the running totals while the day is
// open and the frozen snapshot after finalization. A day with no sales has no
// report row and returns 404.
func (h *ReportHandler) Get(c *gin.Context) {
	date, ok := parseReportDate(c.Param("date"))
	if !ok {
		response.BadRequest(c, "Invalid report date, expected YYYY-MM-DD")
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// Finalize handles POST /reports/:date/finalize (the end-of-day Z-Read).
// Idempotent: finalizing an already-closed day returns the same snapshot.
func (h *ReportHandler) Finalize(c *gin.Context) {
	date, ok := parseReportDate(c.Param("date"))
	if !ok {
		response.BadRequest(c, "Invalid report date, expected YYYY-MM-DD")
		return
	}

	report, err := h.reportService.Finalize(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report finalized successfully", report)
}
