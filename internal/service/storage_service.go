package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"smartenglish_backend/internal/config"
	"smartenglish_backend/internal/util"
	"smartenglish_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 定义通用存储接口，对象一律私有，通过限时签名链接访问
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	UploadFile(ctx context.Context, key string, localPath string, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// LocalStorageProvider 本地存储实现，签名链接由 /api/files 路由校验
type LocalStorageProvider struct {
	Root       string
	SigningKey []byte
	BaseURL    string
}

func NewLocalStorageProvider(cfg *config.StorageConfig) *LocalStorageProvider {
	return &LocalStorageProvider{
		Root:       cfg.LocalPath,
		SigningKey: []byte(cfg.SigningKey),
		BaseURL:    "/api/files/",
	}
}

// Path 对象在磁盘上的位置，key 中的 .. 会被清理掉
func (p *LocalStorageProvider) Path(key string) string {
	return filepath.Join(p.Root, filepath.FromSlash(filepath.Clean("/"+key)))
}

func (p *LocalStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	dst := p.Path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalStorageProvider) UploadFile(ctx context.Context, key string, localPath string, contentType string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()

	return p.Upload(ctx, key, src, -1, contentType)
}

func (p *LocalStorageProvider) Delete(ctx context.Context, key string) error {
	err := os.Remove(p.Path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *LocalStorageProvider) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, p.SigningKey)
	mac.Write([]byte(key))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (p *LocalStorageProvider) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if len(p.SigningKey) == 0 {
		return "", fmt.Errorf("local storage signing key is empty")
	}
	if _, err := os.Stat(p.Path(key)); err != nil {
		return "", err
	}

	expires := time.Now().Add(expiry).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", p.sign(key, expires))
	return p.BaseURL + strings.TrimPrefix(key, "/") + "?" + q.Encode(), nil
}

// Verify 校验签名链接参数
func (p *LocalStorageProvider) Verify(key, expires, sig string) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || time.Now().Unix() > exp {
		return util.ErrInvalidSignature
	}
	if !hmac.Equal([]byte(p.sign(key, exp)), []byte(sig)) {
		return util.ErrInvalidSignature
	}
	return nil
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioStorageProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) UploadFile(ctx context.Context, key string, localPath string, contentType string) error {
	_, err := p.Client.FPutObject(ctx, p.Bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := p.Client.PresignedGetObject(ctx, p.Bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// OSSStorageProvider 阿里云OSS存储实现
type OSSStorageProvider struct {
	Bucket *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return p.Bucket.PutObject(key, reader, oss.ContentType(contentType))
}

func (p *OSSStorageProvider) UploadFile(ctx context.Context, key string, localPath string, contentType string) error {
	return p.Bucket.PutObjectFromFile(key, localPath, oss.ContentType(contentType))
}

func (p *OSSStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Bucket.DeleteObject(key)
}

func (p *OSSStorageProvider) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return p.Bucket.SignURL(key, oss.HTTPGet, int64(expiry.Seconds()))
}

// StorageService 存储服务
type StorageService struct {
	Provider StorageProvider
	expiry   atomic.Int64
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("init minio storage failed, falling back to local", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("init oss storage failed, falling back to local", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = NewLocalStorageProvider(&cfg.Storage)
	}

	return NewStorageServiceWithProvider(provider, cfg.Storage.SignedURLExpiry())
}

func NewStorageServiceWithProvider(provider StorageProvider, expiry time.Duration) *StorageService {
	s := &StorageService{Provider: provider}
	s.SetExpiry(expiry)
	return s
}

// SetExpiry 配置热更新时调整签名有效期
func (s *StorageService) SetExpiry(d time.Duration) {
	s.expiry.Store(int64(d))
}

func (s *StorageService) Expiry() time.Duration {
	return time.Duration(s.expiry.Load())
}

func (s *StorageService) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return s.Provider.Upload(ctx, key, reader, size, contentType)
}

func (s *StorageService) UploadFile(ctx context.Context, key string, localPath string, contentType string) error {
	return s.Provider.UploadFile(ctx, key, localPath, contentType)
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.Provider.Delete(ctx, key)
}

func (s *StorageService) SignedURL(ctx context.Context, key string) (string, error) {
	return s.Provider.SignedURL(ctx, key, s.Expiry())
}

// Local 仅本地存储时返回非空，用于注册文件下载路由
func (s *StorageService) Local() *LocalStorageProvider {
	p, _ := s.Provider.(*LocalStorageProvider)
	return p
}
