package service

import (
	"context"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/repository"
)

// 服务依赖的存储接口，由 repository 包中的 gorm/redis 实现满足

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID uint) error
	ListStudents(ctx context.Context) ([]model.User, error)
}

type XPLedger interface {
	ApplyXP(ctx context.Context, p model.PendingXP) (bool, error)
}

type PendingXPSource interface {
	PendingXP(ctx context.Context, before time.Time, limit int) ([]model.PendingXP, error)
}

type DailyStore interface {
	CreateDaily(ctx context.Context, p *model.DailyProgress) error
	FindDailyByID(ctx context.Context, id uint) (*model.DailyProgress, error)
	FindDailyByDate(ctx context.Context, userID uint, date string) (*model.DailyProgress, error)
	ListDaily(ctx context.Context, userID uint, f repository.DateFilter) ([]model.DailyProgress, error)
	UpdateDaily(ctx context.Context, p *model.DailyProgress) error
	DeleteDaily(ctx context.Context, id uint) error
	DailyBucketStats(ctx context.Context, userIDs []uint) ([]repository.DailyBucketStat, error)
}

type ReportStore interface {
	CreateWeekly(ctx context.Context, w *model.WeeklyProgress) error
	ListWeekly(ctx context.Context, userID uint, f repository.DateFilter) ([]model.WeeklyProgress, error)
	DeleteWeekly(ctx context.Context, id uint) error
	CreateMonthly(ctx context.Context, m *model.MonthlyProgress) error
	ListMonthly(ctx context.Context, userID uint, f repository.DateFilter) ([]model.MonthlyProgress, error)
	DeleteMonthly(ctx context.Context, id uint) error
}

type RecordingStore interface {
	Create(ctx context.Context, rec *model.AudioRecording) error
	FindByID(ctx context.Context, id string) (*model.AudioRecording, error)
	ListByUser(ctx context.Context, userID uint) ([]model.AudioRecording, error)
	Delete(ctx context.Context, id string) error
}

type SummaryCache interface {
	Get(ctx context.Context, userID uint, window string) (*model.ProgressSummary, bool)
	Set(ctx context.Context, userID uint, window string, s *model.ProgressSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, userID uint) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, uint, string) (*model.ProgressSummary, bool) {
	return nil, false
}

func (noopCache) Set(context.Context, uint, string, *model.ProgressSummary, time.Duration) error {
	return nil
}

func (noopCache) Invalidate(context.Context, uint) error {
	return nil
}

func cacheOrNoop(c SummaryCache) SummaryCache {
	if c == nil {
		return noopCache{}
	}
	return c
}
