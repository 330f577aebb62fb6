package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/service"
	"control-docente/backend/pkg/response"
)

// SemesterHandler 学期日期模块 HTTP 处理器
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler 创建 SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

// GetSemesterDates 获取学期日期配置
// GET /api/v1/semester-dates
func (h *SemesterHandler) GetSemesterDates(c *gin.Context) {
	dates, err := h.semesterSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dates)
}

// UpdateSemesterDates 更新学期日期配置（整体替换）
// PUT /api/v1/semester-dates
func (h *SemesterHandler) UpdateSemesterDates(c *gin.Context) {
	var req dto.UpdateSemesterDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dates, err := h.semesterSvc.Update(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrSemesterDatesInvalid) {
			response.BadRequest(c, 14001, "学期日期无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dates)
}
