package handler

import (
	"errors"
	"net/http"

	"greenscore/internal/config"
	"greenscore/internal/middleware"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportHandler spreadsheet upload and template download
type ImportHandler struct {
	importService *service.ImportService
	cfg           *config.Config
}

// NewImportHandler creates an ImportHandler
func NewImportHandler(importService *service.ImportService, cfg *config.Config) *ImportHandler {
	return &ImportHandler{importService: importService, cfg: cfg}
}

// Import multipart upload in field "file"
// @Router /api/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Import.GetMaxUploadBytes())

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RequestTooLarge(c, "upload exceeds the size limit")
			return
		}
		utils.BadRequest(c, "file upload failed: "+err.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.BadRequest(c, "open file failed: "+err.Error())
		return
	}
	defer src.Close()

	id, _ := middleware.GetIdentity(c)
	resp, err := h.importService.Import(c.Request.Context(), id, file.Filename, src)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "import completed", resp)
}

// Template example workbook
// @Router /api/import/template [get]
func (h *ImportHandler) Template(c *gin.Context) {
	buf, err := h.importService.Template()
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "sustainability_template.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
