package progress

import (
	"math/rand"
	"testing"

	"smartenglish_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleRecords() []model.DailyProgress {
	return []model.DailyProgress{
		{
			BaseModel:           model.BaseModel{ID: 1},
			Date:                "2026-10-01",
			TimeSpent:           "1h",
			Activities:          model.StringSet{"listening", "reading"},
			NewExpressionsCount: "3-5",
			Confidence:          intPtr(6),
			Difficulties:        model.StringSet{"grammar"},
			XPAwarded:           35,
		},
		{
			BaseModel:           model.BaseModel{ID: 2},
			Date:                "2026-10-02",
			TimeSpent:           ">1h",
			Activities:          model.StringSet{"listening", "listening", "cooking"},
			NewExpressionsCount: "6+",
			Confidence:          intPtr(8),
			Difficulties:        model.StringSet{"grammar", "motivation"},
			XPAwarded:           40,
		},
		{
			BaseModel:           model.BaseModel{ID: 3},
			Date:                "2026-10-05",
			TimeSpent:           "whenever",
			NewExpressionsCount: "??",
			XPAwarded:           10,
		},
	}
}

func TestFold_EmptyInput(t *testing.T) {
	s := Fold(nil)
	assert.Zero(t, s.Records)
	assert.Zero(t, s.TotalMinutes)
	assert.Zero(t, s.AverageMinutes)
	assert.Equal(t, 0.0, s.AverageConfidence)
	assert.Empty(t, s.Series)
	assert.Len(t, s.ActivityFrequency, len(Activities))
	for _, n := range s.ActivityFrequency {
		assert.Zero(t, n)
	}
}

func TestFold_AverageConfidence(t *testing.T) {
	records := []model.DailyProgress{
		{Date: "2026-10-01", Confidence: intPtr(6)},
		{Date: "2026-10-02", Confidence: intPtr(8)},
	}
	assert.Equal(t, 7.0, Fold(records).AverageConfidence)

	sevens := make([]model.DailyProgress, 5)
	for i := range sevens {
		sevens[i] = model.DailyProgress{Date: "2026-10-0" + string(rune('1'+i)), Confidence: intPtr(7)}
	}
	assert.Equal(t, 7.0, Fold(sevens).AverageConfidence)
}

func TestFold_SkipsNullConfidence(t *testing.T) {
	records := []model.DailyProgress{
		{Date: "2026-10-01", Confidence: intPtr(4)},
		{Date: "2026-10-02"},
	}
	assert.Equal(t, 4.0, Fold(records).AverageConfidence)
}

func TestFold_Totals(t *testing.T) {
	s := Fold(sampleRecords())

	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 60+90+0, s.TotalMinutes)
	assert.InDelta(t, 50.0, s.AverageMinutes, 1e-9)
	assert.Equal(t, 7.0, s.AverageConfidence)
	assert.Equal(t, 3+6, s.TotalNewExpressions)
	assert.Equal(t, 85, s.TotalXP)
	assert.Equal(t, "2026-10-01", s.FirstDate)
	assert.Equal(t, "2026-10-05", s.LastDate)

	assert.Equal(t, 2, s.ActivityFrequency["listening"])
	assert.Equal(t, 1, s.ActivityFrequency["reading"])
	assert.NotContains(t, s.ActivityFrequency, "cooking")
	assert.Equal(t, 2, s.DifficultyFrequency["grammar"])
	assert.Equal(t, 1, s.DifficultyFrequency["motivation"])
}

func TestFold_FrequencyBounds(t *testing.T) {
	records := sampleRecords()
	s := Fold(records)

	activityTotal := 0
	for _, n := range s.ActivityFrequency {
		assert.GreaterOrEqual(t, n, 0)
		activityTotal += n
	}
	assert.LessOrEqual(t, activityTotal, len(records)*len(Activities))

	difficultyTotal := 0
	for _, n := range s.DifficultyFrequency {
		assert.GreaterOrEqual(t, n, 0)
		difficultyTotal += n
	}
	assert.LessOrEqual(t, difficultyTotal, len(records)*len(Difficulties))
}

func TestFold_OrderIndependent(t *testing.T) {
	records := sampleRecords()
	want := Fold(records)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.DailyProgress(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Fold(shuffled))
	}
}

func TestFold_SeriesSortedByDate(t *testing.T) {
	records := sampleRecords()
	records[0], records[2] = records[2], records[0]

	s := Fold(records)
	require.Len(t, s.Series, 3)
	assert.Equal(t, "2026-10-01", s.Series[0].Date)
	assert.Equal(t, "2026-10-02", s.Series[1].Date)
	assert.Equal(t, "2026-10-05", s.Series[2].Date)
	assert.Nil(t, s.Series[2].Confidence)
}

func TestWindow_DateRange(t *testing.T) {
	s := Aggregate(sampleRecords(), Window{From: "2026-10-02", To: "2026-10-04"})
	assert.Equal(t, 1, s.Records)
	assert.Equal(t, "2026-10-02", s.FirstDate)
}

func TestWindow_LastN(t *testing.T) {
	s := Aggregate(sampleRecords(), Window{Last: 2})
	assert.Equal(t, 2, s.Records)
	assert.Equal(t, "2026-10-02", s.FirstDate)
	assert.Equal(t, "2026-10-05", s.LastDate)
	assert.Equal(t, 8.0, s.AverageConfidence)
}

func TestWindow_LastNLargerThanInput(t *testing.T) {
	s := Aggregate(sampleRecords(), Window{Last: 10})
	assert.Equal(t, 3, s.Records)
}
