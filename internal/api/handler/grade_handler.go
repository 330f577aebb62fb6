package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/service"
	"control-docente/backend/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// GetGradesGrid 获取某课程的完整成绩表
// GET /api/v1/courses/:id/grades
func (h *GradeHandler) GetGradesGrid(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	grid, err := h.gradeSvc.GridByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grid)
}

// SetGrade 登记成绩（空值表示清除）
// PUT /api/v1/grades
func (h *GradeHandler) SetGrade(c *gin.Context) {
	var req dto.SetGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.gradeSvc.Set(c.Request.Context(), &req, callerID); err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleGradeError 统一处理成绩模块业务错误
func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradeValueInvalid):
		response.BadRequest(c, 17001, "成绩必须为 1-10 的整数或 A")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 13001, "学生不存在")
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.NotFound(c, 16001, "评估项不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	default:
		response.InternalError(c)
	}
}
