// internal/service/document_service_test.go
package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"readsmart/internal/config"
	"readsmart/internal/ingest"
	"readsmart/internal/model"
	"readsmart/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubFileStorage は保存・削除の呼び出しを記録するスタブ
type stubFileStorage struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newStubFileStorage() *stubFileStorage {
	return &stubFileStorage{saved: make(map[string][]byte)}
}

func (s *stubFileStorage) Save(_ context.Context, key string, data []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved[key] = data
	return "/uploads/" + key, nil
}

func (s *stubFileStorage) Delete(_ context.Context, location string) error {
	s.deleted = append(s.deleted, location)
	return nil
}

func testUploadConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Upload.MaxFileSize = 1024 * 1024
	cfg.Ingest = config.IngestConfig{PageSize: 500, EmptyPageMinChars: 10, ImagePageRatio: 0.5, OCRDPI: 150}
	return cfg
}

// --- Test UploadDocument ---
func Test_documentService_UploadDocument(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	userID := uuid.New()

	t.Run("正常系: テキストファイルの取り込み", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		body := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 30) // 500 rune超
		mockDocRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Document"), mock.AnythingOfType("[]*model.Page")).
			Run(func(args mock.Arguments) {
				doc := args.Get(2).(*model.Document)
				pages := args.Get(3).([]*model.Page)
				assert.Equal(t, userID, doc.UserID)
				assert.Equal(t, "reading-notes", doc.Title)
				assert.Equal(t, "reading-notes.txt", doc.Filename)
				assert.Equal(t, len(pages), doc.TotalPages)
				// ページ番号は1始まりの連番
				for i, page := range pages {
					assert.Equal(t, i+1, page.PageNumber)
					assert.Equal(t, doc.DocumentID, page.DocumentID)
				}
			}).Return(nil).Once()

		doc, err := svc.UploadDocument(ctx, userID, &model.UploadDocumentRequest{
			Filename:    "reading-notes.txt",
			ContentType: "text/plain",
			Data:        []byte(body),
		})

		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, body, doc.Content)
		assert.Greater(t, doc.TotalPages, 1)
		assert.Len(t, fileStorage.saved, 1)
		assert.Empty(t, fileStorage.deleted)
		mockDocRepo.AssertExpectations(t)
	})

	t.Run("異常系: 未対応形式は原本を保存しない", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		_, err := svc.UploadDocument(ctx, userID, &model.UploadDocumentRequest{
			Filename:    "archive.zip",
			ContentType: "application/zip",
			Data:        []byte("PK..."),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
		assert.Empty(t, fileStorage.saved)
		mockDocRepo.AssertNotCalled(t, "Create")
	})

	t.Run("異常系: 不正なUTF-8は保存済みの原本を片付けてから拒否", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		_, err := svc.UploadDocument(ctx, userID, &model.UploadDocumentRequest{
			Filename:    "broken.txt",
			ContentType: "text/plain",
			Data:        []byte{0xff, 0xfe, 0xfd},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrEncoding)
		// 保存→抽出失敗→削除の順
		assert.Len(t, fileStorage.saved, 1)
		assert.Len(t, fileStorage.deleted, 1)
		mockDocRepo.AssertNotCalled(t, "Create")
	})

	t.Run("異常系: サイズ上限超過", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		cfg.Upload.MaxFileSize = 10
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		_, err := svc.UploadDocument(ctx, userID, &model.UploadDocumentRequest{
			Filename:    "big.txt",
			ContentType: "text/plain",
			Data:        []byte("this is more than ten bytes"),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Empty(t, fileStorage.saved)
	})

	t.Run("異常系: 空ファイル", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		_, err := svc.UploadDocument(ctx, userID, &model.UploadDocumentRequest{
			Filename:    "empty.txt",
			ContentType: "text/plain",
			Data:        nil,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("異常系: DB登録失敗時は原本を片付ける", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		mockDocRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Document"), mock.AnythingOfType("[]*model.Page")).
			Return(errors.New("db error")).Once()

		_, err := svc.UploadDocument(ctx, userID, &model.UploadDocumentRequest{
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Data:        []byte("a perfectly fine document body"),
		})

		require.Error(t, err)
		assert.Len(t, fileStorage.deleted, 1)
	})
}

// --- Test DeleteDocument ---
func Test_documentService_DeleteDocument(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	userID := uuid.New()
	documentID := uuid.New()

	t.Run("正常系: DB削除後に原本もベストエフォートで削除", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		doc := &model.Document{DocumentID: documentID, UserID: userID, FilePath: "/uploads/doc.txt"}
		mockDocRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, documentID).
			Return(doc, nil).Once()
		mockDocRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), userID, documentID).
			Return(nil).Once()

		err := svc.DeleteDocument(ctx, userID, documentID)

		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/doc.txt"}, fileStorage.deleted)
		mockDocRepo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないドキュメント", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		fileStorage := newStubFileStorage()
		cfg := testUploadConfig()
		svc := NewDocumentService(db, mockDocRepo, ingest.NewPipeline(cfg.Ingest), fileStorage, cfg)

		mockDocRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, documentID).
			Return(nil, model.ErrNotFound).Once()

		err := svc.DeleteDocument(ctx, userID, documentID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Empty(t, fileStorage.deleted)
	})
}
