// Package progress 包含学习记录的纯计算逻辑：档位换算、经验值计算与汇总统计。
package progress

// 每日学习时长档位
const (
	TimeUnder30  = "<30min"
	Time30To45   = "30-45min"
	TimeOneHour  = "1h"
	TimeOverHour = ">1h"
)

// 新学表达数量档位
const (
	Expr0To2  = "0-2"
	Expr3To5  = "3-5"
	ExprSixUp = "6+"
)

// 档位到分钟数的固定换算表
var timeSpentMinutes = map[string]int{
	TimeUnder30:  15,
	Time30To45:   40,
	TimeOneHour:  60,
	TimeOverHour: 90,
}

// 新学表达数量取档位下限
var expressionCounts = map[string]int{
	Expr0To2:  0,
	Expr3To5:  3,
	ExprSixUp: 6,
}

var (
	TimeSpentBuckets  = []string{TimeUnder30, Time30To45, TimeOneHour, TimeOverHour}
	ExpressionBuckets = []string{Expr0To2, Expr3To5, ExprSixUp}

	// Activities 每日表单中可勾选的练习项目
	Activities = []string{
		"listening", "speaking", "reading", "writing",
		"vocabulary", "grammar", "pronunciation", "shadowing",
	}

	// Difficulties 每日表单中可勾选的困难
	Difficulties = []string{
		"pronunciation", "listening", "vocabulary", "grammar",
		"speaking_confidence", "motivation", "time_management",
	}

	// 周报相关枚举
	WeeklyProgressLevels = []string{"much_better", "better", "same", "worse"}
	GoalsMetOptions      = []string{"yes", "partially", "no"}
)

// TimeSpentMinutes 未知档位返回 0
func TimeSpentMinutes(label string) int {
	return timeSpentMinutes[label]
}

// NewExpressionsCount 未知档位返回 0
func NewExpressionsCount(label string) int {
	return expressionCounts[label]
}

func IsTimeSpent(label string) bool {
	_, ok := timeSpentMinutes[label]
	return ok
}

func IsExpressionBucket(label string) bool {
	_, ok := expressionCounts[label]
	return ok
}

func IsActivity(key string) bool {
	return contains(Activities, key)
}

func IsDifficulty(key string) bool {
	return contains(Difficulties, key)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
