package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"control-docente/backend/internal/model"
)

// SemesterDatesRepository 学期日期数据访问接口（单行）
type SemesterDatesRepository interface {
	Get(ctx context.Context) (*model.SemesterDates, error)
	Update(ctx context.Context, dates *model.SemesterDates) error
}

type semesterDatesRepo struct {
	db *gorm.DB
}

// NewSemesterDatesRepo 创建 SemesterDatesRepository 实例
func NewSemesterDatesRepo(db *gorm.DB) SemesterDatesRepository {
	return &semesterDatesRepo{db: db}
}

func (r *semesterDatesRepo) Get(ctx context.Context) (*model.SemesterDates, error) {
	var dates model.SemesterDates
	err := r.db.WithContext(ctx).First(&dates).Error
	if err != nil {
		// 单例行由迁移预置；缺行时退回出厂默认范围
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultSemesterDates(), nil
		}
		return nil, err
	}
	return &dates, nil
}

func (r *semesterDatesRepo) Update(ctx context.Context, dates *model.SemesterDates) error {
	dates.Singleton = true
	return r.db.WithContext(ctx).Save(dates).Error
}
