package repository

import (
	"context"
	"errors"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"

	"gorm.io/gorm"
)

// ReportRepository 周报和月报
type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) CreateWeekly(ctx context.Context, w *model.WeeklyProgress) error {
	err := r.DB.WithContext(ctx).Create(w).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAlreadySubmitted
	}
	return err
}

func (r *ReportRepository) ListWeekly(ctx context.Context, userID uint, f DateFilter) ([]model.WeeklyProgress, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if f.From != "" {
		query = query.Where("week_start >= ?", f.From)
	}
	if f.To != "" {
		query = query.Where("week_start <= ?", f.To)
	}
	query = query.Order(orderBy("week_start", f.Desc))
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var list []model.WeeklyProgress
	err := query.Find(&list).Error
	return list, err
}

func (r *ReportRepository) DeleteWeekly(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &model.WeeklyProgress{}, id)
}

func (r *ReportRepository) CreateMonthly(ctx context.Context, m *model.MonthlyProgress) error {
	err := r.DB.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAlreadySubmitted
	}
	return err
}

func (r *ReportRepository) ListMonthly(ctx context.Context, userID uint, f DateFilter) ([]model.MonthlyProgress, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	// month 列为 YYYY-MM，日期条件按所在月份比较
	if f.From != "" {
		query = query.Where("month >= ?", monthOf(f.From))
	}
	if f.To != "" {
		query = query.Where("month <= ?", monthOf(f.To))
	}
	query = query.Order(orderBy("month", f.Desc))
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var list []model.MonthlyProgress
	err := query.Find(&list).Error
	return list, err
}

func (r *ReportRepository) DeleteMonthly(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &model.MonthlyProgress{}, id)
}

func orderBy(column string, desc bool) string {
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

func monthOf(date string) string {
	if len(date) > 7 {
		return date[:7]
	}
	return date
}

// deleteByID 报告行物理删除，否则软删除的行仍占着唯一索引
func deleteByID(db *gorm.DB, value interface{}, id uint) error {
	res := db.Unscoped().Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrRecordNotFound
	}
	return nil
}
