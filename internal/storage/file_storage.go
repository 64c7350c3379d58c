// internal/storage/file_storage.go
//
// Package storage はアップロードされた原本ファイルの保管先です。
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage はドキュメント原本のバイト列を保存・削除するコラボレータ。
// 返り値の location はそのまま Delete に渡せる不透明な識別子。
type FileStorage interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, location string) error
}

// LocalFileStorage はローカルディスク実装。
type LocalFileStorage struct {
	baseDir string
}

func NewLocalFileStorage(baseDir string) *LocalFileStorage {
	return &LocalFileStorage{baseDir: baseDir}
}

// Save は baseDir 配下に key 名でファイルを書き込み、フルパスを返します
func (s *LocalFileStorage) Save(_ context.Context, key string, data []byte) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	location := filepath.Join(s.baseDir, filepath.Base(key))
	if err := os.WriteFile(location, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return location, nil
}

// Delete は保存済みファイルを削除します。既に存在しない場合は成功扱い。
func (s *LocalFileStorage) Delete(_ context.Context, location string) error {
	if err := os.Remove(location); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}
