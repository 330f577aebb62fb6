package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"control-docente/backend/internal/model"
)

// GradeRepository 成绩数据访问接口
// 复合主键 (student_id, evaluation_instance_id)；清空成绩即删除行
type GradeRepository interface {
	Upsert(ctx context.Context, grade *model.Grade) error
	Delete(ctx context.Context, studentID, evaluationInstanceID string) error
	ListByStudentIDs(ctx context.Context, studentIDs []string) ([]model.Grade, error)
	ListAll(ctx context.Context) ([]model.Grade, error)
	ReplaceAll(ctx context.Context, grades []model.Grade) error
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Upsert(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "evaluation_instance_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "updated_by"}),
		}).
		Create(grade).Error
}

func (r *gradeRepo) Delete(ctx context.Context, studentID, evaluationInstanceID string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ? AND evaluation_instance_id = ?", studentID, evaluationInstanceID).
		Delete(&model.Grade{}).Error
}

func (r *gradeRepo) ListByStudentIDs(ctx context.Context, studentIDs []string) ([]model.Grade, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepo) ListAll(ctx context.Context) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Order("student_id ASC, evaluation_instance_id ASC").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

// ReplaceAll 整表替换（仅用于快照恢复，须在事务内调用）
func (r *gradeRepo) ReplaceAll(ctx context.Context, grades []model.Grade) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Grade{}).Error; err != nil {
		return err
	}
	if len(grades) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&grades).Error
}
