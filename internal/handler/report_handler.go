package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler PDF reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Download yearly report
// @Router /api/reports/{year} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 9999 {
		utils.BadRequest(c, "invalid year")
		return
	}

	buf, err := h.reportService.Generate(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, fmt.Sprintf("sustainability_report_%d.pdf", year))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func attachment(c *gin.Context, filename string) {
	encodedFilename := url.PathEscape(filename)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"; filename*=UTF-8''"+encodedFilename)
}
