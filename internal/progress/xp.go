package progress

import (
	"math"

	"smartenglish_backend/internal/model"
)

const (
	// BaseXP 任意一次完整提交的基础经验
	BaseXP = 10

	// ActivityXP 每个不同的练习项目
	ActivityXP = 5

	// WeeklyXP / MonthlyXP 周报、月报的固定奖励
	WeeklyXP  = 20
	MonthlyXP = 50

	// LevelXPCoef 等级曲线 XP_req = 100 * level^1.5
	LevelXPCoef = 100.0
)

func timeSpentBonus(label string) int {
	switch label {
	case TimeOverHour:
		return 15
	case TimeOneHour:
		return 10
	case Time30To45:
		return 5
	default:
		return 0
	}
}

func expressionBonus(label string) int {
	switch label {
	case ExprSixUp:
		return 10
	case Expr3To5:
		return 5
	default:
		return 0
	}
}

// DailyXP 计算一条每日记录的经验值，结果在提交时固定下来
func DailyXP(r *model.DailyProgress) int {
	if r == nil {
		return 0
	}
	xp := BaseXP
	xp += timeSpentBonus(r.TimeSpent)
	xp += ActivityXP * len(r.Activities.Distinct())
	xp += expressionBonus(r.NewExpressionsCount)
	return xp
}

// XPRequiredForLevel 达到指定等级所需的累计经验，0 级为 0
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return int(math.Ceil(LevelXPCoef * math.Pow(float64(level), 1.5)))
}

// LevelForTotalXP 满足 totalXP >= XPRequiredForLevel(L) 的最大 L
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 0
	}

	low, high := 0, 1
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}

	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}
