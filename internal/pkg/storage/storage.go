package storage

import (
	"context"
	"io"
)

// Storage 文档文件存储接口
// 文件以key为标识的字节流读写，Download返回的ReadCloser由调用方
// 在响应流结束后关闭
type Storage interface {
	// Upload 上传文件
	Upload(ctx context.Context, key string, data io.Reader, contentType string) error

	// Download 下载文件（返回文件流）
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete 删除文件
	Delete(ctx context.Context, key string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)
