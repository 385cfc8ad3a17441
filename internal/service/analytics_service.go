package service

import (
	"context"
	"fmt"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/progress"
	"smartenglish_backend/internal/repository"
	"smartenglish_backend/pkg/logger"
	"smartenglish_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type AnalyticsService struct {
	Daily    DailyStore
	Reports  ReportStore
	Users    UserStore
	Cache    SummaryCache
	CacheTTL time.Duration
}

func NewAnalyticsService(daily DailyStore, reports ReportStore, users UserStore, cache SummaryCache, ttl time.Duration) *AnalyticsService {
	return &AnalyticsService{
		Daily:    daily,
		Reports:  reports,
		Users:    users,
		Cache:    cacheOrNoop(cache),
		CacheTTL: ttl,
	}
}

func windowKey(w progress.Window) string {
	return fmt.Sprintf("%s|%s|%d", w.From, w.To, w.Last)
}

// LearnerSummary 学员在窗口内的汇总，带短期缓存
func (s *AnalyticsService) LearnerSummary(ctx context.Context, userID uint, w progress.Window) (*model.ProgressSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "analytics.LearnerSummary", attribute.Int("user.id", int(userID)))
	defer span.End()

	key := windowKey(w)
	if cached, ok := s.Cache.Get(ctx, userID, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	records, err := s.Daily.ListDaily(ctx, userID, repository.DateFilter{
		From:  w.From,
		To:    w.To,
		Desc:  true,
		Limit: w.Last,
	})
	if err != nil {
		return nil, err
	}

	summary := progress.Aggregate(records, w)
	if err := s.Cache.Set(ctx, userID, key, &summary, s.CacheTTL); err != nil {
		logger.Log.Warn("cache summary failed", zap.Uint("userId", userID), zap.Error(err))
	}
	return &summary, nil
}

// AdminOverview 每个学员一行，分钟数按档位换算表在内存中计算
func (s *AnalyticsService) AdminOverview(ctx context.Context) ([]model.StudentOverview, error) {
	users, err := s.Users.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	stats, err := s.Daily.DailyBucketStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	type acc struct {
		records, minutes, confSum, confCount int
		lastDate                             string
	}
	byUser := make(map[uint]*acc, len(users))
	for _, st := range stats {
		a, ok := byUser[st.UserID]
		if !ok {
			a = &acc{}
			byUser[st.UserID] = a
		}
		a.records += st.Records
		a.minutes += progress.TimeSpentMinutes(st.TimeSpent) * st.Records
		a.confSum += st.ConfidenceSum
		a.confCount += st.ConfidenceCount
		if st.LastDate > a.lastDate {
			a.lastDate = st.LastDate
		}
	}

	rows := make([]model.StudentOverview, 0, len(users))
	for _, u := range users {
		row := model.StudentOverview{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
			XP:     u.XP,
			Level:  progress.LevelForTotalXP(u.XP),
		}
		if a, ok := byUser[u.ID]; ok {
			row.Records = a.records
			row.TotalMinutes = a.minutes
			row.LastSubmission = a.lastDate
			if a.confCount > 0 {
				row.AverageConfidence = float64(a.confSum) / float64(a.confCount)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *AnalyticsService) StudentDetail(ctx context.Context, userID uint, w progress.Window) (*model.StudentDetail, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.LearnerSummary(ctx, userID, w)
	if err != nil {
		return nil, err
	}

	detail := &model.StudentDetail{
		Profile: NewProfile(user),
		Summary: summary,
	}

	latest := repository.DateFilter{Desc: true, Limit: 1}
	weekly, err := s.Reports.ListWeekly(ctx, userID, latest)
	if err != nil {
		return nil, err
	}
	if len(weekly) > 0 {
		detail.LatestWeekly = &weekly[0]
	}

	monthly, err := s.Reports.ListMonthly(ctx, userID, latest)
	if err != nil {
		return nil, err
	}
	if len(monthly) > 0 {
		detail.LatestMonthly = &monthly[0]
	}
	return detail, nil
}
