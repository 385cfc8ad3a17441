package service

import (
	"context"
	"errors"
	"testing"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/progress"
	"smartenglish_backend/internal/repository"
	"smartenglish_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressFixture() (*memStore, *countingCache, *ProgressService) {
	store := newMemStore()
	cache := newCountingCache()
	xp := NewXPService(store, store, cache)
	return store, cache, NewProgressService(store, xp, cache)
}

func sampleDaily(date string) DailyInput {
	return DailyInput{
		Date:                date,
		TimeSpent:           progress.TimeOverHour,
		Activities:          []string{"listening", "speaking", "listening"},
		NewExpressionsCount: progress.Expr3To5,
		Confidence:          intPtr(7),
		Difficulties:        []string{"pronunciation"},
	}
}

func TestSubmitDailyAppliesXP(t *testing.T) {
	store, cache, svc := newProgressFixture()
	user := store.addUser("alice", model.Student)

	rec, err := svc.SubmitDaily(context.Background(), user.ID, sampleDaily("2026-10-12"))
	require.NoError(t, err)

	assert.Equal(t, 40, rec.XPAwarded)
	assert.True(t, rec.XPApplied)
	assert.Equal(t, []string{"listening", "speaking"}, []string(rec.Activities))

	u, _ := store.FindByID(context.Background(), user.ID)
	assert.Equal(t, 40, u.XP)
	assert.GreaterOrEqual(t, cache.invalidated[user.ID], 1)
}

func TestSubmitDailyDuplicateDate(t *testing.T) {
	store, _, svc := newProgressFixture()
	user := store.addUser("bob", model.Student)

	_, err := svc.SubmitDaily(context.Background(), user.ID, sampleDaily("2026-10-12"))
	require.NoError(t, err)

	_, err = svc.SubmitDaily(context.Background(), user.ID, sampleDaily("2026-10-12"))
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)

	u, _ := store.FindByID(context.Background(), user.ID)
	assert.Equal(t, 40, u.XP)
}

func TestSubmitDailyValidation(t *testing.T) {
	store, _, svc := newProgressFixture()
	user := store.addUser("carol", model.Student)

	cases := map[string]func(in *DailyInput){
		"bad date":       func(in *DailyInput) { in.Date = "12/10/2026" },
		"bad time spent": func(in *DailyInput) { in.TimeSpent = "2h" },
		"bad bucket":     func(in *DailyInput) { in.NewExpressionsCount = "10+" },
		"confidence":     func(in *DailyInput) { in.Confidence = intPtr(11) },
		"activity":       func(in *DailyInput) { in.Activities = []string{"dancing"} },
		"difficulty":     func(in *DailyInput) { in.Difficulties = []string{"weather"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleDaily("2026-10-13")
			mutate(&in)
			_, err := svc.SubmitDaily(context.Background(), user.ID, in)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}
	assert.Empty(t, store.daily)
}

func TestSubmitDailyKeepsRecordWhenXPFails(t *testing.T) {
	store, _, svc := newProgressFixture()
	user := store.addUser("dave", model.Student)
	store.failXP = errors.New("connection reset")

	rec, err := svc.SubmitDaily(context.Background(), user.ID, sampleDaily("2026-10-14"))
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrXPNotApplied)
	require.NotNil(t, rec)
	assert.False(t, rec.XPApplied)

	saved, err := store.FindDailyByDate(context.Background(), user.ID, "2026-10-14")
	require.NoError(t, err)
	assert.Equal(t, 40, saved.XPAwarded)

	u, _ := store.FindByID(context.Background(), user.ID)
	assert.Equal(t, 0, u.XP)
}

func TestAdminUpdateDailyKeepsDateAndXP(t *testing.T) {
	store, _, svc := newProgressFixture()
	user := store.addUser("erin", model.Student)

	rec, err := svc.SubmitDaily(context.Background(), user.ID, sampleDaily("2026-10-15"))
	require.NoError(t, err)

	in := sampleDaily("2030-01-01")
	in.TimeSpent = progress.TimeUnder30
	in.Activities = nil
	updated, err := svc.AdminUpdateDaily(context.Background(), rec.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-15", updated.Date)
	assert.Equal(t, progress.TimeUnder30, updated.TimeSpent)
	assert.Equal(t, 40, updated.XPAwarded)

	u, _ := store.FindByID(context.Background(), user.ID)
	assert.Equal(t, 40, u.XP)
}

func TestAdminDeleteDaily(t *testing.T) {
	store, cache, svc := newProgressFixture()
	user := store.addUser("frank", model.Student)

	rec, err := svc.SubmitDaily(context.Background(), user.ID, sampleDaily("2026-10-16"))
	require.NoError(t, err)
	before := cache.invalidated[user.ID]

	require.NoError(t, svc.AdminDeleteDaily(context.Background(), rec.ID))
	assert.Greater(t, cache.invalidated[user.ID], before)

	_, err = svc.GetDaily(context.Background(), user.ID, "2026-10-16")
	assert.ErrorIs(t, err, util.ErrRecordNotFound)

	err = svc.AdminDeleteDaily(context.Background(), rec.ID)
	assert.ErrorIs(t, err, util.ErrRecordNotFound)
}

func TestListDailyRange(t *testing.T) {
	store, _, svc := newProgressFixture()
	user := store.addUser("gina", model.Student)
	for _, d := range []string{"2026-10-01", "2026-10-05", "2026-10-09"} {
		_, err := svc.SubmitDaily(context.Background(), user.ID, sampleDaily(d))
		require.NoError(t, err)
	}

	list, err := svc.ListDaily(context.Background(), user.ID, repository.DateFilter{From: "2026-10-02", Desc: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-10-09", list[0].Date)
	assert.Equal(t, "2026-10-05", list[1].Date)
}

func TestGetDailyRejectsBadDate(t *testing.T) {
	_, _, svc := newProgressFixture()
	_, err := svc.GetDaily(context.Background(), 1, "yesterday")
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}
