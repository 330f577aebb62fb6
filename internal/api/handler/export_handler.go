package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"control-docente/backend/internal/service"
	"control-docente/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendanceCSV 导出某课程考勤表为 CSV
// GET /api/v1/courses/:id/export/csv
func (h *ExportHandler) ExportAttendanceCSV(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.AttendanceCSV(c.Request.Context(), courseID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, "text/csv; charset=utf-8")
}

// ExportAttendanceXLSX 导出某课程考勤表为 Excel
// GET /api/v1/courses/:id/export/xlsx
func (h *ExportHandler) ExportAttendanceXLSX(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.AttendanceXLSX(c.Request.Context(), courseID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// ExportCourseCalendarICS 导出某课程已上课日期为日历
// GET /api/v1/courses/:id/export/ics
func (h *ExportHandler) ExportCourseCalendarICS(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.CourseCalendarICS(c.Request.Context(), courseID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, "text/calendar; charset=utf-8")
}

// writeDownload 设置下载响应头并写入文件内容
func writeDownload(c *gin.Context, data []byte, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
