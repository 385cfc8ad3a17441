package repository

import (
	"context"
	"testing"

	"smartenglish_backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库，单连接保证事务串行
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.DailyProgress{},
		&model.WeeklyProgress{},
		&model.MonthlyProgress{},
		&model.AudioRecording{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Name: "learner", Email: email, Password: "hashed", Role: model.Student}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func intPtr(v int) *int {
	return &v
}
