package service

import (
	"context"
	"fmt"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/progress"
	"smartenglish_backend/internal/repository"
	"smartenglish_backend/internal/util"
	"smartenglish_backend/pkg/logger"

	"go.uber.org/zap"
)

// DailyInput 每日表单
type DailyInput struct {
	Date                string   `json:"date" binding:"required,datefmt"`
	TimeSpent           string   `json:"timeSpent" binding:"required,timespent"`
	Activities          []string `json:"activities" binding:"omitempty,dive,activity"`
	NewExpressionsCount string   `json:"newExpressionsCount" binding:"omitempty,exprbucket"`
	Confidence          *int     `json:"confidence" binding:"omitempty,min=0,max=10"`
	Difficulties        []string `json:"difficulties" binding:"omitempty,dive,difficulty"`
	DifficultyNotes     string   `json:"difficultyNotes" binding:"max=4000"`
	CopingStrategies    string   `json:"copingStrategies" binding:"max=4000"`
}

// Validate 非 HTTP 调用方同样需要的校验
func (in DailyInput) Validate() error {
	if _, err := util.ParseDate(in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", util.ErrInvalidInput)
	}
	if !progress.IsTimeSpent(in.TimeSpent) {
		return fmt.Errorf("%w: unknown timeSpent %q", util.ErrInvalidInput, in.TimeSpent)
	}
	if in.NewExpressionsCount != "" && !progress.IsExpressionBucket(in.NewExpressionsCount) {
		return fmt.Errorf("%w: unknown newExpressionsCount %q", util.ErrInvalidInput, in.NewExpressionsCount)
	}
	if in.Confidence != nil && (*in.Confidence < 0 || *in.Confidence > 10) {
		return fmt.Errorf("%w: confidence must be between 0 and 10", util.ErrInvalidInput)
	}
	for _, a := range in.Activities {
		if !progress.IsActivity(a) {
			return fmt.Errorf("%w: unknown activity %q", util.ErrInvalidInput, a)
		}
	}
	for _, d := range in.Difficulties {
		if !progress.IsDifficulty(d) {
			return fmt.Errorf("%w: unknown difficulty %q", util.ErrInvalidInput, d)
		}
	}
	return nil
}

func (in DailyInput) apply(p *model.DailyProgress) {
	p.TimeSpent = in.TimeSpent
	p.Activities = model.StringSet(in.Activities).Distinct()
	p.NewExpressionsCount = in.NewExpressionsCount
	p.Confidence = in.Confidence
	p.Difficulties = model.StringSet(in.Difficulties).Distinct()
	p.DifficultyNotes = in.DifficultyNotes
	p.CopingStrategies = in.CopingStrategies
}

type ProgressService struct {
	Daily DailyStore
	XP    *XPService
	Cache SummaryCache
}

func NewProgressService(daily DailyStore, xp *XPService, cache SummaryCache) *ProgressService {
	return &ProgressService{Daily: daily, XP: xp, Cache: cacheOrNoop(cache)}
}

// SubmitDaily 保存每日记录并计入经验。
// 记录写入成功后经验计入失败时，仍返回已保存的记录，同时返回 util.ErrXPNotApplied。
func (s *ProgressService) SubmitDaily(ctx context.Context, userID uint, in DailyInput) (*model.DailyProgress, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	record := &model.DailyProgress{UserID: userID, Date: in.Date}
	in.apply(record)
	record.XPAwarded = progress.DailyXP(record)

	if err := s.Daily.CreateDaily(ctx, record); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	err := s.XP.Apply(ctx, model.PendingXP{
		Table:    record.TableName(),
		RecordID: record.ID,
		UserID:   userID,
		Amount:   record.XPAwarded,
	})
	if err != nil {
		return record, err
	}
	record.XPApplied = true

	logger.Log.Info("daily progress submitted",
		zap.Uint("userId", userID),
		zap.String("date", record.Date),
		zap.Int("xp", record.XPAwarded),
	)
	return record, nil
}

func (s *ProgressService) GetDaily(ctx context.Context, userID uint, date string) (*model.DailyProgress, error) {
	if _, err := util.ParseDate(date); err != nil {
		return nil, err
	}
	return s.Daily.FindDailyByDate(ctx, userID, date)
}

func (s *ProgressService) ListDaily(ctx context.Context, userID uint, f repository.DateFilter) ([]model.DailyProgress, error) {
	return s.Daily.ListDaily(ctx, userID, f)
}

// AdminUpdateDaily 管理员修改记录内容。日期和已发放的经验不变。
func (s *ProgressService) AdminUpdateDaily(ctx context.Context, id uint, in DailyInput) (*model.DailyProgress, error) {
	record, err := s.Daily.FindDailyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Date = record.Date
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.apply(record)
	if err := s.Daily.UpdateDaily(ctx, record); err != nil {
		return nil, err
	}
	s.invalidate(ctx, record.UserID)
	return record, nil
}

// AdminDeleteDaily 删除记录，已计入的经验不回收
func (s *ProgressService) AdminDeleteDaily(ctx context.Context, id uint) error {
	record, err := s.Daily.FindDailyByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Daily.DeleteDaily(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, record.UserID)
	return nil
}

func (s *ProgressService) invalidate(ctx context.Context, userID uint) {
	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		logger.Log.Warn("invalidate summary cache failed", zap.Uint("userId", userID), zap.Error(err))
	}
}
