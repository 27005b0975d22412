package pkg

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"yatube/internal/config"
)

// ImagePrefix 帖子图片在存储中的目录
const ImagePrefix = "posts/"

// Upload 上传文件的句柄，只负责转交给存储
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageStore 保存上传的图片，返回写入帖子的引用
type ImageStore interface {
	Save(ctx context.Context, up *Upload) (string, error)
	Delete(ctx context.Context, ref string) error
}

type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg config.Minio) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket 启动时调用，桶不存在则创建
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *MinioStore) Save(ctx context.Context, up *Upload) (string, error) {
	name := ObjectName(up.Filename)
	_, err := s.client.PutObject(ctx, s.bucket, name, up.Body, up.Size, minio.PutObjectOptions{
		ContentType: up.ContentType,
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// Delete 帖子写库失败时清理刚上传的对象
func (s *MinioStore) Delete(ctx context.Context, ref string) error {
	return s.client.RemoveObject(ctx, s.bucket, ref, minio.RemoveObjectOptions{})
}

// ObjectName uuid 命名，保留原扩展名
func ObjectName(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	return ImagePrefix + uuid.NewString() + ext
}
