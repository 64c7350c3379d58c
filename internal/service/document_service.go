package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"readsmart/internal/config"
	"readsmart/internal/ingest"
	"readsmart/internal/middleware"
	"readsmart/internal/model"
	"readsmart/internal/repository"
	"readsmart/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentService はドキュメントの取り込みと閲覧を担当します。
type DocumentService interface {
	UploadDocument(ctx context.Context, userID uuid.UUID, req *model.UploadDocumentRequest) (*model.Document, error)
	GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*model.Document, error)
	ListDocuments(ctx context.Context, userID uuid.UUID, skip, limit int) (*model.DocumentListResponse, error)
	GetPage(ctx context.Context, userID, documentID uuid.UUID, pageNumber int) (*model.Page, error)
	DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error
}

type documentService struct {
	db       *gorm.DB
	docRepo  repository.DocumentRepository
	pipeline *ingest.Pipeline
	storage  storage.FileStorage
	cfg      *config.Config
}

func NewDocumentService(db *gorm.DB, docRepo repository.DocumentRepository, pipeline *ingest.Pipeline, fileStorage storage.FileStorage, cfg *config.Config) DocumentService {
	return &documentService{
		db:       db,
		docRepo:  docRepo,
		pipeline: pipeline,
		storage:  fileStorage,
		cfg:      cfg,
	}
}

// UploadDocument は原本を保存してからテキストを抽出し、ドキュメントと
// ページをトランザクションで登録します。抽出に失敗したら保存済みの
// 原本を片付けてからエラーを返す。
func (s *documentService) UploadDocument(ctx context.Context, userID uuid.UUID, req *model.UploadDocumentRequest) (*model.Document, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "filename", req.Filename)

	if len(req.Data) == 0 {
		return nil, model.NewAppError("EMPTY_FILE", "ファイルが空です。", "file", model.ErrInvalidInput)
	}
	if int64(len(req.Data)) > s.cfg.Upload.MaxFileSize {
		logger.Warn("Upload rejected: file too large", "size", len(req.Data))
		return nil, model.NewAppError("FILE_TOO_LARGE", "ファイルサイズが上限を超えています。", "file", model.ErrInvalidInput)
	}

	// 形式判定はテキスト抽出より前に。未対応形式なら原本も保存しない。
	if _, err := ingest.Detect(req.ContentType, req.Filename); err != nil {
		logger.Warn("Upload rejected: unsupported format", "content_type", req.ContentType)
		return nil, model.NewAppError("UNSUPPORTED_FORMAT", "対応していないファイル形式です。", "file", err)
	}

	documentID := uuid.New()
	key := fmt.Sprintf("%s_%s", documentID.String(), filepath.Base(req.Filename))
	location, err := s.storage.Save(ctx, key, req.Data)
	if err != nil {
		logger.Error("Failed to save uploaded file", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ファイルの保存に失敗しました。", "", err)
	}

	content, pageTexts, err := s.pipeline.Ingest(ctx, req.Data, req.ContentType, req.Filename)
	if err != nil {
		// 取り込めなかった原本は残さない
		if delErr := s.storage.Delete(ctx, location); delErr != nil {
			logger.Warn("Failed to clean up file after ingest failure", "error", delErr, "location", location)
		}
		logger.Warn("Document ingestion failed", "error", err)
		if errors.Is(err, model.ErrEncoding) {
			return nil, model.NewAppError("INVALID_ENCODING", "ファイルのエンコーディングが不正です。UTF-8のテキストを指定してください。", "file", err)
		}
		return nil, model.NewAppError("INGEST_FAILED", "ファイルからテキストを抽出できませんでした。", "file", err)
	}

	doc := &model.Document{
		DocumentID: documentID,
		UserID:     userID,
		Title:      strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename)),
		Filename:   req.Filename,
		FilePath:   location,
		Content:    content,
		TotalPages: len(pageTexts),
	}
	pages := make([]*model.Page, 0, len(pageTexts))
	for i, text := range pageTexts {
		pages = append(pages, &model.Page{
			PageID:     uuid.New(),
			DocumentID: documentID,
			PageNumber: i + 1,
			Content:    text,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.docRepo.Create(ctx, tx, doc, pages)
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, location); delErr != nil {
			logger.Warn("Failed to clean up file after DB failure", "error", delErr, "location", location)
		}
		logger.Error("Failed to persist document", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ドキュメントの登録に失敗しました。", "", err)
	}

	logger.Info("Document uploaded", "document_id", doc.DocumentID, "total_pages", doc.TotalPages)
	return doc, nil
}

// GetDocument は所有者チェック付きでドキュメントを取得します
func (s *documentService) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*model.Document, error) {
	logger := middleware.GetLogger(ctx)
	doc, err := s.docRepo.FindByID(ctx, s.db, userID, documentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DOCUMENT_NOT_FOUND", "ドキュメントが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding document", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return doc, nil
}

// ListDocuments はユーザーのドキュメント一覧を新しい順で返します
func (s *documentService) ListDocuments(ctx context.Context, userID uuid.UUID, skip, limit int) (*model.DocumentListResponse, error) {
	logger := middleware.GetLogger(ctx)

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	docs, total, err := s.docRepo.FindByUser(ctx, s.db, userID, skip, limit)
	if err != nil {
		logger.Error("Error listing documents", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return &model.DocumentListResponse{Documents: docs, Total: total}, nil
}

// GetPage は1ページ分の本文を返します
func (s *documentService) GetPage(ctx context.Context, userID, documentID uuid.UUID, pageNumber int) (*model.Page, error) {
	logger := middleware.GetLogger(ctx)

	// 所有者チェックを兼ねてドキュメントの存在を確認
	if _, err := s.GetDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	page, err := s.docRepo.FindPage(ctx, s.db, documentID, pageNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PAGE_NOT_FOUND", "指定されたページが見つかりません。", "page", model.ErrNotFound)
		}
		logger.Error("Error finding page", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return page, nil
}

// DeleteDocument はドキュメントを削除します。ページとクリック履歴はDBの
// カスケードで消え、原本ファイルの削除はベストエフォート（失敗はログのみ）。
func (s *documentService) DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "document_id", documentID.String())

	doc, err := s.docRepo.FindByID(ctx, s.db, userID, documentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("DOCUMENT_NOT_FOUND", "ドキュメントが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding document for delete", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.docRepo.Delete(ctx, tx, userID, documentID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("DOCUMENT_NOT_FOUND", "ドキュメントが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete document", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ドキュメントの削除に失敗しました。", "", err)
	}

	if err := s.storage.Delete(ctx, doc.FilePath); err != nil {
		logger.Warn("Failed to delete original file", "error", err, "location", doc.FilePath)
	}

	logger.Info("Document deleted")
	return nil
}
