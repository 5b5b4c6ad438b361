package minio

import (
	"Campusmarket/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// Store 对象存储客户端，实现 service.BlobStore
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Put 上传对象，返回对象键
func (s *Store) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// Remove 删除对象
func (s *Store) Remove(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	if err := Client.RemoveObject(ctx, Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// URL 返回对象的逻辑地址 bucket/objectKey，入库用这个，不含协议和主机
func (s *Store) URL(objectName string) string {
	return Bucket + "/" + objectName
}

// PublicURL 获取对象的公共访问URL
func PublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.Endpoint, Bucket, objectName)
}
