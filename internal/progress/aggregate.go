package progress

import (
	"sort"

	"smartenglish_backend/internal/model"
)

// Window 汇总前的筛选条件。From/To 为闭区间日期（YYYY-MM-DD），为空表示不限；
// Last > 0 时只保留按日期最近的 N 条。
type Window struct {
	From string
	To   string
	Last int
}

// Apply 唯一与顺序有关的一步，汇总本身与输入顺序无关
func (w Window) Apply(records []model.DailyProgress) []model.DailyProgress {
	out := make([]model.DailyProgress, 0, len(records))
	for _, r := range records {
		if w.From != "" && r.Date < w.From {
			continue
		}
		if w.To != "" && r.Date > w.To {
			continue
		}
		out = append(out, r)
	}

	if w.Last > 0 && len(out) > w.Last {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Date != out[j].Date {
				return out[i].Date > out[j].Date
			}
			return out[i].ID > out[j].ID
		})
		out = out[:w.Last]
	}
	return out
}

// Aggregate 先按窗口筛选，再做汇总
func Aggregate(records []model.DailyProgress, w Window) model.ProgressSummary {
	return Fold(w.Apply(records))
}

func newFrequency(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 10 {
		return 10
	}
	return c
}

// Fold 单次遍历的汇总。频次表只统计枚举内的键，每条记录每个键最多计一次。
func Fold(records []model.DailyProgress) model.ProgressSummary {
	s := model.ProgressSummary{
		ActivityFrequency:   newFrequency(Activities),
		DifficultyFrequency: newFrequency(Difficulties),
		Series:              make([]model.DailyPoint, 0, len(records)),
	}

	confidenceSum, confidenceCount := 0, 0
	for _, r := range records {
		minutes := TimeSpentMinutes(r.TimeSpent)
		expressions := NewExpressionsCount(r.NewExpressionsCount)

		s.Records++
		s.TotalMinutes += minutes
		s.TotalNewExpressions += expressions
		s.TotalXP += r.XPAwarded

		var confidence *int
		if r.Confidence != nil {
			c := clampConfidence(*r.Confidence)
			confidence = &c
			confidenceSum += c
			confidenceCount++
		}

		for _, a := range r.Activities.Distinct() {
			if _, ok := s.ActivityFrequency[a]; ok {
				s.ActivityFrequency[a]++
			}
		}
		for _, d := range r.Difficulties.Distinct() {
			if _, ok := s.DifficultyFrequency[d]; ok {
				s.DifficultyFrequency[d]++
			}
		}

		if s.FirstDate == "" || r.Date < s.FirstDate {
			s.FirstDate = r.Date
		}
		if r.Date > s.LastDate {
			s.LastDate = r.Date
		}

		s.Series = append(s.Series, model.DailyPoint{
			Date:           r.Date,
			Minutes:        minutes,
			Confidence:     confidence,
			NewExpressions: expressions,
		})
	}

	if s.Records > 0 {
		s.AverageMinutes = float64(s.TotalMinutes) / float64(s.Records)
	}
	if confidenceCount > 0 {
		s.AverageConfidence = float64(confidenceSum) / float64(confidenceCount)
	}

	sort.Slice(s.Series, func(i, j int) bool {
		return pointLess(s.Series[i], s.Series[j])
	})
	return s
}

func pointLess(a, b model.DailyPoint) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if a.Minutes != b.Minutes {
		return a.Minutes < b.Minutes
	}
	if a.NewExpressions != b.NewExpressions {
		return a.NewExpressions < b.NewExpressions
	}
	ac, bc := -1, -1
	if a.Confidence != nil {
		ac = *a.Confidence
	}
	if b.Confidence != nil {
		bc = *b.Confidence
	}
	return ac < bc
}
