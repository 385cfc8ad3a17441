package repository

import (
	"context"
	"testing"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMonthlyMatchesDateBoundsByMonth(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@example.com")

	for _, m := range []string{"2026-09", "2026-10", "2026-11"} {
		require.NoError(t, repo.CreateMonthly(ctx, &model.MonthlyProgress{UserID: u.ID, Month: m, XPAwarded: 50}))
	}

	cases := []struct {
		name   string
		filter DateFilter
		want   []string
	}{
		{"whole month", DateFilter{From: "2026-10-01", To: "2026-10-31"}, []string{"2026-10"}},
		{"mid month bounds", DateFilter{From: "2026-10-15", To: "2026-11-02"}, []string{"2026-10", "2026-11"}},
		{"month bounds", DateFilter{From: "2026-10", To: "2026-10"}, []string{"2026-10"}},
		{"open end desc", DateFilter{From: "2026-10-20", Desc: true}, []string{"2026-11", "2026-10"}},
		{"no filter", DateFilter{}, []string{"2026-09", "2026-10", "2026-11"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := repo.ListMonthly(ctx, u.ID, tc.filter)
			require.NoError(t, err)
			var months []string
			for _, m := range list {
				months = append(months, m.Month)
			}
			assert.Equal(t, tc.want, months)
		})
	}
}

func TestListWeeklyRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@example.com")

	for _, w := range []string{"2026-09-28", "2026-10-05", "2026-10-12"} {
		require.NoError(t, repo.CreateWeekly(ctx, &model.WeeklyProgress{UserID: u.ID, WeekStart: w, XPAwarded: 20}))
	}

	list, err := repo.ListWeekly(ctx, u.ID, DateFilter{From: "2026-10-01", Desc: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2026-10-12", list[0].WeekStart)
}

func TestDeleteReportsAllowsResubmit(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@example.com")

	weekly := &model.WeeklyProgress{UserID: u.ID, WeekStart: "2026-10-12", OverallProgress: "better"}
	require.NoError(t, repo.CreateWeekly(ctx, weekly))
	assert.ErrorIs(t, repo.CreateWeekly(ctx, &model.WeeklyProgress{UserID: u.ID, WeekStart: "2026-10-12"}), util.ErrAlreadySubmitted)
	require.NoError(t, repo.DeleteWeekly(ctx, weekly.ID))
	assert.NoError(t, repo.CreateWeekly(ctx, &model.WeeklyProgress{UserID: u.ID, WeekStart: "2026-10-12", OverallProgress: "same"}))

	monthly := &model.MonthlyProgress{UserID: u.ID, Month: "2026-10"}
	require.NoError(t, repo.CreateMonthly(ctx, monthly))
	assert.ErrorIs(t, repo.CreateMonthly(ctx, &model.MonthlyProgress{UserID: u.ID, Month: "2026-10"}), util.ErrAlreadySubmitted)
	require.NoError(t, repo.DeleteMonthly(ctx, monthly.ID))
	assert.NoError(t, repo.CreateMonthly(ctx, &model.MonthlyProgress{UserID: u.ID, Month: "2026-10"}))

	assert.ErrorIs(t, repo.DeleteMonthly(ctx, 999), util.ErrRecordNotFound)
}
