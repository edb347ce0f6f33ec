package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aaronpaddy/smart-course-scheduler/internal/service"
	"github.com/aaronpaddy/smart-course-scheduler/pkg/response"
)

// ExportHandler 导出模块 Handler
type ExportHandler struct {
	svc service.ExportService
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportICS 导出选课表为 iCalendar
// GET /api/v1/schedules/:id/export.ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.svc.ExportScheduleICS(c.Request.Context(), id)
	if err != nil {
		handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar", buf.Bytes())
}

// ExportXLSX 导出选课表周视图为 Excel
// GET /api/v1/schedules/:id/export.xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.svc.ExportScheduleXLSX(c.Request.Context(), id)
	if err != nil {
		handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// handleExportError 统一导出模块错误映射
func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportScheduleNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrExportNoCourses):
		response.BadRequest(c, 15002, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
