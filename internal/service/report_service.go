package service

import (
	"context"
	"fmt"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/progress"
	"smartenglish_backend/internal/repository"
	"smartenglish_backend/internal/util"
)

// WeeklyInput 周报表单，WeekStart 可以是当周任意一天，保存时归到周一
type WeeklyInput struct {
	WeekStart       string   `json:"weekStart" binding:"required,datefmt"`
	OverallProgress string   `json:"overallProgress" binding:"required,oneof=much_better better same worse"`
	GoalsMet        string   `json:"goalsMet" binding:"required,oneof=yes partially no"`
	HardestSkills   []string `json:"hardestSkills" binding:"omitempty,dive,activity"`
	Highlights      string   `json:"highlights" binding:"max=4000"`
	NextWeekGoals   string   `json:"nextWeekGoals" binding:"max=4000"`
}

// MonthlyInput 月报表单
type MonthlyInput struct {
	Month          string   `json:"month" binding:"required,monthfmt"`
	Satisfaction   *int     `json:"satisfaction" binding:"omitempty,min=0,max=10"`
	SkillsImproved []string `json:"skillsImproved" binding:"omitempty,dive,activity"`
	BiggestWin     string   `json:"biggestWin" binding:"max=4000"`
	Challenges     string   `json:"challenges" binding:"max=4000"`
	NextMonthGoals string   `json:"nextMonthGoals" binding:"max=4000"`
}

type ReportService struct {
	Reports ReportStore
	XP      *XPService
}

func NewReportService(reports ReportStore, xp *XPService) *ReportService {
	return &ReportService{Reports: reports, XP: xp}
}

func (s *ReportService) SubmitWeekly(ctx context.Context, userID uint, in WeeklyInput) (*model.WeeklyProgress, error) {
	day, err := util.ParseDate(in.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("%w: weekStart must be YYYY-MM-DD", util.ErrInvalidInput)
	}
	if !contains(progress.WeeklyProgressLevels, in.OverallProgress) || !contains(progress.GoalsMetOptions, in.GoalsMet) {
		return nil, fmt.Errorf("%w: unknown weekly option", util.ErrInvalidInput)
	}

	report := &model.WeeklyProgress{
		UserID:          userID,
		WeekStart:       util.WeekStart(day).Format(util.DateFormat),
		OverallProgress: in.OverallProgress,
		GoalsMet:        in.GoalsMet,
		HardestSkills:   model.StringSet(in.HardestSkills).Distinct(),
		Highlights:      in.Highlights,
		NextWeekGoals:   in.NextWeekGoals,
		XPAwarded:       progress.WeeklyXP,
	}
	if err := s.Reports.CreateWeekly(ctx, report); err != nil {
		return nil, err
	}

	if err := s.XP.Apply(ctx, model.PendingXP{
		Table:    report.TableName(),
		RecordID: report.ID,
		UserID:   userID,
		Amount:   report.XPAwarded,
	}); err != nil {
		return report, err
	}
	report.XPApplied = true
	return report, nil
}

func (s *ReportService) ListWeekly(ctx context.Context, userID uint, f repository.DateFilter) ([]model.WeeklyProgress, error) {
	return s.Reports.ListWeekly(ctx, userID, f)
}

func (s *ReportService) SubmitMonthly(ctx context.Context, userID uint, in MonthlyInput) (*model.MonthlyProgress, error) {
	if _, err := time.Parse(util.MonthFormat, in.Month); err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", util.ErrInvalidInput)
	}
	if in.Satisfaction != nil && (*in.Satisfaction < 0 || *in.Satisfaction > 10) {
		return nil, fmt.Errorf("%w: satisfaction must be between 0 and 10", util.ErrInvalidInput)
	}

	report := &model.MonthlyProgress{
		UserID:         userID,
		Month:          in.Month,
		Satisfaction:   in.Satisfaction,
		SkillsImproved: model.StringSet(in.SkillsImproved).Distinct(),
		BiggestWin:     in.BiggestWin,
		Challenges:     in.Challenges,
		NextMonthGoals: in.NextMonthGoals,
		XPAwarded:      progress.MonthlyXP,
	}
	if err := s.Reports.CreateMonthly(ctx, report); err != nil {
		return nil, err
	}

	if err := s.XP.Apply(ctx, model.PendingXP{
		Table:    report.TableName(),
		RecordID: report.ID,
		UserID:   userID,
		Amount:   report.XPAwarded,
	}); err != nil {
		return report, err
	}
	report.XPApplied = true
	return report, nil
}

func (s *ReportService) ListMonthly(ctx context.Context, userID uint, f repository.DateFilter) ([]model.MonthlyProgress, error) {
	return s.Reports.ListMonthly(ctx, userID, f)
}

func (s *ReportService) AdminDeleteWeekly(ctx context.Context, id uint) error {
	return s.Reports.DeleteWeekly(ctx, id)
}

func (s *ReportService) AdminDeleteMonthly(ctx context.Context, id uint) error {
	return s.Reports.DeleteMonthly(ctx, id)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
