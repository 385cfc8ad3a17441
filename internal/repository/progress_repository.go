package repository

import (
	"context"
	"errors"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"

	"gorm.io/gorm"
)

// DateFilter 列表查询条件，日期为闭区间
type DateFilter struct {
	From  string
	To    string
	Desc  bool
	Limit int
}

// DailyBucketStat 按学员和时长档位分组的统计，管理端概览使用
type DailyBucketStat struct {
	UserID          uint
	TimeSpent       string
	Records         int
	ConfidenceSum   int
	ConfidenceCount int
	LastDate        string
}

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) CreateDaily(ctx context.Context, p *model.DailyProgress) error {
	err := r.DB.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAlreadySubmitted
	}
	return err
}

func (r *ProgressRepository) FindDailyByID(ctx context.Context, id uint) (*model.DailyProgress, error) {
	var p model.DailyProgress
	err := r.DB.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRecordNotFound
	}
	return &p, err
}

func (r *ProgressRepository) FindDailyByDate(ctx context.Context, userID uint, date string) (*model.DailyProgress, error) {
	var p model.DailyProgress
	err := r.DB.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRecordNotFound
	}
	return &p, err
}

func (r *ProgressRepository) ListDaily(ctx context.Context, userID uint, f DateFilter) ([]model.DailyProgress, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if f.From != "" {
		query = query.Where("date >= ?", f.From)
	}
	if f.To != "" {
		query = query.Where("date <= ?", f.To)
	}
	if f.Desc {
		query = query.Order("date DESC")
	} else {
		query = query.Order("date ASC")
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var list []model.DailyProgress
	err := query.Find(&list).Error
	return list, err
}

// UpdateDaily 管理员修改记录内容，经验值字段保持提交时的值
func (r *ProgressRepository) UpdateDaily(ctx context.Context, p *model.DailyProgress) error {
	return r.DB.WithContext(ctx).Model(p).
		Select("TimeSpent", "Activities", "NewExpressionsCount", "Confidence", "Difficulties", "DifficultyNotes", "CopingStrategies").
		Updates(p).Error
}

// DeleteDaily 物理删除，释放 (user_id, date) 唯一索引，学员可重新提交当天记录
func (r *ProgressRepository) DeleteDaily(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &model.DailyProgress{}, id)
}

func (r *ProgressRepository) DailyBucketStats(ctx context.Context, userIDs []uint) ([]DailyBucketStat, error) {
	var stats []DailyBucketStat
	if len(userIDs) == 0 {
		return stats, nil
	}
	err := r.DB.WithContext(ctx).Model(&model.DailyProgress{}).
		Select("user_id, time_spent, COUNT(*) AS records, COALESCE(SUM(confidence), 0) AS confidence_sum, COUNT(confidence) AS confidence_count, MAX(date) AS last_date").
		Where("user_id IN ?", userIDs).
		Group("user_id, time_spent").
		Scan(&stats).Error
	return stats, err
}

// PendingXP 查找创建超过一段时间仍未计入经验的提交
func (r *ProgressRepository) PendingXP(ctx context.Context, before time.Time, limit int) ([]model.PendingXP, error) {
	tables := []string{
		model.DailyProgress{}.TableName(),
		model.WeeklyProgress{}.TableName(),
		model.MonthlyProgress{}.TableName(),
	}

	var out []model.PendingXP
	for _, table := range tables {
		var rows []struct {
			ID        uint
			UserID    uint
			XPAwarded int
		}
		err := r.DB.WithContext(ctx).Table(table).
			Select("id, user_id, xp_awarded").
			Where("xp_applied = ? AND created_at < ? AND deleted_at IS NULL", false, before).
			Order("id ASC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return out, err
		}
		for _, row := range rows {
			out = append(out, model.PendingXP{Table: table, RecordID: row.ID, UserID: row.UserID, Amount: row.XPAwarded})
		}
	}
	return out, nil
}
