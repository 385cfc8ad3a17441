package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"smartenglish_backend/internal/structured"
)

// StringSet 以 JSON 文本列存储的字符串集合。
// 历史数据可能是数组、勾选对象或单个字符串，读取时统一解析，无法解析时视为空。
type StringSet []string

func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSet) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("StringSet: unsupported source %T", src)
	}
	*s = StringSet(structured.Parse(raw).Strings())
	return nil
}

// Distinct 去重后的非空元素，保持原有顺序
func (s StringSet) Distinct() []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DailyProgress 每日学习自评
// swagger:model DailyProgress
type DailyProgress struct {
	BaseModel
	UserID              uint      `gorm:"not null;uniqueIndex:idx_daily_user_date" json:"userId"`
	Date                string    `gorm:"size:10;not null;uniqueIndex:idx_daily_user_date" json:"date"`
	TimeSpent           string    `gorm:"size:16" json:"timeSpent"`
	Activities          StringSet `gorm:"type:text" json:"activities"`
	NewExpressionsCount string    `gorm:"size:8" json:"newExpressionsCount"`
	Confidence          *int      `json:"confidence"`
	Difficulties        StringSet `gorm:"type:text" json:"difficulties"`
	DifficultyNotes     string    `gorm:"type:text" json:"difficultyNotes"`
	CopingStrategies    string    `gorm:"type:text" json:"copingStrategies"`
	XPAwarded           int       `gorm:"default:0" json:"xpAwarded"`
	XPApplied           bool      `gorm:"default:false;index" json:"xpApplied"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DailyProgress) TableName() string {
	return "daily_progress"
}

// WeeklyProgress 每周总结，WeekStart 为当周周一
// swagger:model WeeklyProgress
type WeeklyProgress struct {
	BaseModel
	UserID          uint      `gorm:"not null;uniqueIndex:idx_weekly_user_week" json:"userId"`
	WeekStart       string    `gorm:"size:10;not null;uniqueIndex:idx_weekly_user_week" json:"weekStart"`
	OverallProgress string    `gorm:"size:16" json:"overallProgress"`
	GoalsMet        string    `gorm:"size:16" json:"goalsMet"`
	HardestSkills   StringSet `gorm:"type:text" json:"hardestSkills"`
	Highlights      string    `gorm:"type:text" json:"highlights"`
	NextWeekGoals   string    `gorm:"type:text" json:"nextWeekGoals"`
	XPAwarded       int       `gorm:"default:0" json:"xpAwarded"`
	XPApplied       bool      `gorm:"default:false;index" json:"xpApplied"`
}

func (WeeklyProgress) TableName() string {
	return "weekly_progress"
}

// MonthlyProgress 每月总结，Month 形如 2026-10
// swagger:model MonthlyProgress
type MonthlyProgress struct {
	BaseModel
	UserID         uint      `gorm:"not null;uniqueIndex:idx_monthly_user_month" json:"userId"`
	Month          string    `gorm:"size:7;not null;uniqueIndex:idx_monthly_user_month" json:"month"`
	Satisfaction   *int      `json:"satisfaction"`
	SkillsImproved StringSet `gorm:"type:text" json:"skillsImproved"`
	BiggestWin     string    `gorm:"type:text" json:"biggestWin"`
	Challenges     string    `gorm:"type:text" json:"challenges"`
	NextMonthGoals string    `gorm:"type:text" json:"nextMonthGoals"`
	XPAwarded      int       `gorm:"default:0" json:"xpAwarded"`
	XPApplied      bool      `gorm:"default:false;index" json:"xpApplied"`
}

func (MonthlyProgress) TableName() string {
	return "monthly_progress"
}

// PendingXP 尚未计入累计经验的提交
type PendingXP struct {
	Table    string
	RecordID uint
	UserID   uint
	Amount   int
}
