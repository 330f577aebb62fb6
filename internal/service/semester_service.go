package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/model"
	"control-docente/backend/internal/repository"
)

// ── 学期日期模块业务错误 ──

var ErrSemesterDatesInvalid = errors.New("学期结束日期必须不早于开始日期")

// SemesterService 学期日期业务接口（全局单行配置）
type SemesterService interface {
	Get(ctx context.Context) (*dto.SemesterDatesResponse, error)
	Update(ctx context.Context, req *dto.UpdateSemesterDatesRequest, callerID string) (*dto.SemesterDatesResponse, error)
}

type semesterService struct {
	repo   *repository.Repository
	saver  Autosaver
	logger *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(repo *repository.Repository, saver Autosaver, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, saver: saver, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *semesterService) Get(ctx context.Context) (*dto.SemesterDatesResponse, error) {
	dates, err := s.repo.SemesterDates.Get(ctx)
	if err != nil {
		s.logger.Error("查询学期日期失败", zap.Error(err))
		return nil, err
	}

	return s.toSemesterDatesResponse(dates), nil
}

// ────────────────────── Update ──────────────────────

// Update 整体替换学期日期；某学期两端都设置时校验区间合法
func (s *semesterService) Update(ctx context.Context, req *dto.UpdateSemesterDatesRequest, callerID string) (*dto.SemesterDatesResponse, error) {
	if err := validateSemesterRange(req.FirstSemesterStart, req.FirstSemesterEnd); err != nil {
		return nil, err
	}
	if err := validateSemesterRange(req.SecondSemesterStart, req.SecondSemesterEnd); err != nil {
		return nil, err
	}

	dates, err := s.repo.SemesterDates.Get(ctx)
	if err != nil {
		s.logger.Error("查询学期日期失败", zap.Error(err))
		return nil, err
	}

	dates.FirstSemesterStart = req.FirstSemesterStart
	dates.FirstSemesterEnd = req.FirstSemesterEnd
	dates.SecondSemesterStart = req.SecondSemesterStart
	dates.SecondSemesterEnd = req.SecondSemesterEnd
	dates.UpdatedBy = &callerID

	if err := s.repo.SemesterDates.Update(ctx, dates); err != nil {
		s.logger.Error("更新学期日期失败", zap.Error(err))
		return nil, err
	}

	notify(s.saver)
	return s.toSemesterDatesResponse(dates), nil
}

// validateSemesterRange 起止日期都设置时要求 end >= start
func validateSemesterRange(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return ErrSemesterDatesInvalid
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return ErrSemesterDatesInvalid
	}
	if endDate.Before(startDate) {
		return ErrSemesterDatesInvalid
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *semesterService) toSemesterDatesResponse(dates *model.SemesterDates) *dto.SemesterDatesResponse {
	return &dto.SemesterDatesResponse{
		FirstSemesterStart:  dates.FirstSemesterStart,
		FirstSemesterEnd:    dates.FirstSemesterEnd,
		SecondSemesterStart: dates.SecondSemesterStart,
		SecondSemesterEnd:   dates.SecondSemesterEnd,
		UpdatedAt:           dates.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
