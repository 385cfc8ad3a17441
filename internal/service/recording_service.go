package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"
	"smartenglish_backend/pkg/logger"
	"smartenglish_backend/pkg/monitoring"
	"smartenglish_backend/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ObjectStorage 录音服务用到的存储能力
type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, localPath string, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string) (string, error)
}

// UploadInput 上传的录音文件
type UploadInput struct {
	Filename   string
	Size       int64
	Reader     io.Reader
	RecordedOn string
	Note       string
}

type RecordingService struct {
	Store    RecordingStore
	Storage  ObjectStorage
	MaxBytes int64
	// Probe 读取音频时长，默认使用 ffprobe
	Probe func(path string) (*util.AudioInfo, error)
}

func NewRecordingService(store RecordingStore, storage ObjectStorage, maxMB int64) *RecordingService {
	if maxMB <= 0 {
		maxMB = 20
	}
	return &RecordingService{
		Store:    store,
		Storage:  storage,
		MaxBytes: maxMB << 20,
		Probe:    util.GetAudioInfo,
	}
}

func (s *RecordingService) Upload(ctx context.Context, userID uint, in UploadInput) (*model.AudioRecording, error) {
	if !util.IsAudioExtension(in.Filename) {
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedAudio, filepath.Ext(in.Filename))
	}
	if in.Size > s.MaxBytes {
		return nil, util.ErrFileTooLarge
	}
	if in.RecordedOn != "" {
		if _, err := util.ParseDate(in.RecordedOn); err != nil {
			return nil, fmt.Errorf("%w: recordedOn must be YYYY-MM-DD", util.ErrInvalidInput)
		}
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	tmp, err := os.CreateTemp("", "recording-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	// 多读一个字节用于判断是否超限
	written, err := io.Copy(tmp, io.LimitReader(in.Reader, s.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if written > s.MaxBytes {
		return nil, util.ErrFileTooLarge
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := util.ValidateMimeType(tmp, util.AllowedAudioMimeTypes); err != nil {
		return nil, err
	}

	var duration float64
	if s.Probe != nil {
		info, err := s.Probe(tmp.Name())
		if err != nil {
			logger.Log.Warn("probe audio failed", zap.String("filename", in.Filename), zap.Error(err))
		} else {
			duration = info.Duration
		}
	}

	contentType := util.AudioContentType(in.Filename)
	key := fmt.Sprintf("recordings/%d/%s%s", userID, uuid.New().String(), ext)
	if err := s.Storage.UploadFile(ctx, key, tmp.Name(), contentType); err != nil {
		return nil, fmt.Errorf("upload recording: %w", err)
	}

	rec := &model.AudioRecording{
		UserID:      userID,
		ObjectKey:   key,
		Filename:    filepath.Base(in.Filename),
		ContentType: contentType,
		Size:        written,
		Duration:    duration,
		RecordedOn:  in.RecordedOn,
		Note:        in.Note,
	}
	if err := s.Store.Create(ctx, rec); err != nil {
		if delErr := s.Storage.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("remove orphan recording failed", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	logger.Log.Info("recording uploaded",
		zap.Uint("userId", userID),
		zap.String("id", rec.ID),
		zap.Int64("size", rec.Size),
		zap.Float64("duration", rec.Duration),
	)
	return rec, nil
}

// List 返回学员的录音及签名链接。单条链接生成失败只把该条标记为不可用。
func (s *RecordingService) List(ctx context.Context, userID uint) ([]model.RecordingItem, error) {
	ctx, span := tracing.StartSpan(ctx, "recordings.List", attribute.Int("user.id", int(userID)))
	defer span.End()

	recs, err := s.Store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.RecordingItem, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range recs {
		i := i
		items[i].AudioRecording = recs[i]
		g.Go(func() error {
			url, err := s.Storage.SignedURL(gctx, recs[i].ObjectKey)
			if err != nil {
				monitoring.SignedURLFailures.Inc()
				logger.Log.Warn("sign recording url failed",
					zap.String("id", recs[i].ID),
					zap.Error(err),
				)
				return nil
			}
			items[i].URL = url
			items[i].Available = true
			return nil
		})
	}
	// 子任务不返回错误
	_ = g.Wait()
	span.SetAttributes(attribute.Int("recordings.count", len(items)))
	return items, nil
}

// Delete 本人或管理员可删除
func (s *RecordingService) Delete(ctx context.Context, userID uint, role model.UserRole, id string) error {
	rec, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.UserID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}

	if err := s.Storage.Delete(ctx, rec.ObjectKey); err != nil {
		logger.Log.Warn("delete recording object failed", zap.String("key", rec.ObjectKey), zap.Error(err))
	}
	return s.Store.Delete(ctx, id)
}
