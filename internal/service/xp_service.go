package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"
	"smartenglish_backend/pkg/logger"
	"smartenglish_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// XPService 负责把提交时计算好的经验计入学员累计值。
// 记录先落库，经验随后计入；计入失败不回滚记录，由后台重试补齐（至少一次）。
type XPService struct {
	Ledger  XPLedger
	Pending PendingXPSource
	Cache   SummaryCache
}

func NewXPService(ledger XPLedger, pending PendingXPSource, cache SummaryCache) *XPService {
	return &XPService{Ledger: ledger, Pending: pending, Cache: cacheOrNoop(cache)}
}

// Apply 失败时返回包装了 util.ErrXPNotApplied 的错误
func (s *XPService) Apply(ctx context.Context, p model.PendingXP) error {
	if p.Amount < 0 {
		p.Amount = 0
	}

	applied, err := s.Ledger.ApplyXP(ctx, p)
	if err != nil {
		monitoring.XPApplyFailures.Inc()
		logger.Log.Error("apply xp failed",
			zap.String("table", p.Table),
			zap.Uint("recordId", p.RecordID),
			zap.Uint("userId", p.UserID),
			zap.Int("amount", p.Amount),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", util.ErrXPNotApplied, err)
	}

	if applied {
		monitoring.XPAwarded.WithLabelValues(p.Table).Add(float64(p.Amount))
		if err := s.Cache.Invalidate(ctx, p.UserID); err != nil {
			logger.Log.Warn("invalidate summary cache failed", zap.Uint("userId", p.UserID), zap.Error(err))
		}
	}
	return nil
}

// RetryPending 补齐创建时间早于 before 且仍未计入的经验，返回成功计入的条数
func (s *XPService) RetryPending(ctx context.Context, before time.Time) (int, error) {
	pending, err := s.Pending.PendingXP(ctx, before, 100)
	if err != nil {
		return 0, err
	}

	count := 0
	var errs []error
	for _, p := range pending {
		if err := s.Apply(ctx, p); err != nil {
			errs = append(errs, err)
			continue
		}
		count++
	}

	if count > 0 {
		logger.Log.Info("pending xp applied", zap.Int("count", count))
	}
	return count, errors.Join(errs...)
}
