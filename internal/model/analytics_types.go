package model

// DailyPoint 图表用的单日数据
type DailyPoint struct {
	Date           string `json:"date"`
	Minutes        int    `json:"minutes"`
	Confidence     *int   `json:"confidence"`
	NewExpressions int    `json:"newExpressions"`
}

// ProgressSummary 一段时间内的学习汇总
type ProgressSummary struct {
	Records             int            `json:"records"`
	FirstDate           string         `json:"firstDate,omitempty"`
	LastDate            string         `json:"lastDate,omitempty"`
	TotalMinutes        int            `json:"totalMinutes"`
	AverageMinutes      float64        `json:"averageMinutes"`
	AverageConfidence   float64        `json:"averageConfidence"`
	ActivityFrequency   map[string]int `json:"activityFrequency"`
	DifficultyFrequency map[string]int `json:"difficultyFrequency"`
	TotalNewExpressions int            `json:"totalNewExpressions"`
	TotalXP             int            `json:"totalXp"`
	Series              []DailyPoint   `json:"series"`
}

// Profile 当前学员档案
type Profile struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
	XP          int      `json:"xp"`
	Level       int      `json:"level"`
	NextLevelXP int      `json:"nextLevelXp"`
}

// StudentOverview 管理端学员列表的一行
type StudentOverview struct {
	UserID            uint    `json:"userId"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	XP                int     `json:"xp"`
	Level             int     `json:"level"`
	Records           int     `json:"records"`
	LastSubmission    string  `json:"lastSubmission,omitempty"`
	AverageConfidence float64 `json:"averageConfidence"`
	TotalMinutes      int     `json:"totalMinutes"`
}

// StudentDetail 管理端单个学员详情
type StudentDetail struct {
	Profile       Profile          `json:"profile"`
	Summary       *ProgressSummary `json:"summary"`
	LatestWeekly  *WeeklyProgress  `json:"latestWeekly,omitempty"`
	LatestMonthly *MonthlyProgress `json:"latestMonthly,omitempty"`
}

// RecordingItem 录音列表项，签名链接失败时 Available 为 false
type RecordingItem struct {
	AudioRecording
	URL       string `json:"url,omitempty"`
	Available bool   `json:"available"`
}
