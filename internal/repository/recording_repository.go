package repository

import (
	"context"
	"errors"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"

	"gorm.io/gorm"
)

type RecordingRepository struct {
	DB *gorm.DB
}

func NewRecordingRepository(db *gorm.DB) *RecordingRepository {
	return &RecordingRepository{DB: db}
}

func (r *RecordingRepository) Create(ctx context.Context, rec *model.AudioRecording) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *RecordingRepository) FindByID(ctx context.Context, id string) (*model.AudioRecording, error) {
	var rec model.AudioRecording
	err := r.DB.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRecordNotFound
	}
	return &rec, err
}

func (r *RecordingRepository) ListByUser(ctx context.Context, userID uint) ([]model.AudioRecording, error) {
	var list []model.AudioRecording
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *RecordingRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.AudioRecording{}, "id = ?", id).Error
}
