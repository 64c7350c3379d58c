//go:generate mockery --name DocumentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"readsmart/internal/middleware"
	"readsmart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentRepository はドキュメントとページの永続化を担当します。
type DocumentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, doc *model.Document, pages []*model.Page) error
	FindByID(ctx context.Context, db *gorm.DB, userID, documentID uuid.UUID) (*model.Document, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, offset, limit int) ([]*model.Document, int64, error)
	FindPage(ctx context.Context, db *gorm.DB, documentID uuid.UUID, pageNumber int) (*model.Page, error)
	FindPages(ctx context.Context, db *gorm.DB, documentID uuid.UUID) ([]*model.Page, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, documentID uuid.UUID) error
}

type gormDocumentRepository struct{}

func NewGormDocumentRepository() DocumentRepository {
	return &gormDocumentRepository{}
}

// Create はドキュメント本体とページ群を同一トランザクションで保存します。
func (r *gormDocumentRepository) Create(ctx context.Context, tx *gorm.DB, doc *model.Document, pages []*model.Page) error {
	logger := middleware.GetLogger(ctx)

	if result := tx.WithContext(ctx).Create(doc); result.Error != nil {
		logger.Error("Error creating document in DB",
			"error", result.Error,
			"user_id", doc.UserID.String(),
			"filename", doc.Filename,
		)
		return fmt.Errorf("gormDocumentRepository.Create: %w", result.Error)
	}

	if len(pages) == 0 {
		return nil
	}
	if result := tx.WithContext(ctx).Create(pages); result.Error != nil {
		logger.Error("Error creating document pages in DB",
			"error", result.Error,
			"document_id", doc.DocumentID.String(),
			"page_count", len(pages),
		)
		return fmt.Errorf("gormDocumentRepository.Create pages: %w", result.Error)
	}
	return nil
}

func (r *gormDocumentRepository) FindByID(ctx context.Context, db *gorm.DB, userID, documentID uuid.UUID) (*model.Document, error) {
	logger := middleware.GetLogger(ctx)
	var doc model.Document
	result := db.WithContext(ctx).Where("user_id = ? AND document_id = ?", userID, documentID).First(&doc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding document by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"document_id", documentID.String(),
		)
		return nil, fmt.Errorf("gormDocumentRepository.FindByID: %w", result.Error)
	}
	return &doc, nil
}

func (r *gormDocumentRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, offset, limit int) ([]*model.Document, int64, error) {
	logger := middleware.GetLogger(ctx)

	var total int64
	if result := db.WithContext(ctx).Model(&model.Document{}).Where("user_id = ?", userID).Count(&total); result.Error != nil {
		logger.Error("Error counting documents in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, 0, fmt.Errorf("gormDocumentRepository.FindByUser count: %w", result.Error)
	}

	var docs []*model.Document
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&docs)
	if result.Error != nil {
		logger.Error("Error finding documents by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, 0, fmt.Errorf("gormDocumentRepository.FindByUser: %w", result.Error)
	}
	return docs, total, nil
}

func (r *gormDocumentRepository) FindPage(ctx context.Context, db *gorm.DB, documentID uuid.UUID, pageNumber int) (*model.Page, error) {
	logger := middleware.GetLogger(ctx)
	var page model.Page
	result := db.WithContext(ctx).Where("document_id = ? AND page_number = ?", documentID, pageNumber).First(&page)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding page in DB",
			"error", result.Error,
			"document_id", documentID.String(),
			"page_number", pageNumber,
		)
		return nil, fmt.Errorf("gormDocumentRepository.FindPage: %w", result.Error)
	}
	return &page, nil
}

func (r *gormDocumentRepository) FindPages(ctx context.Context, db *gorm.DB, documentID uuid.UUID) ([]*model.Page, error) {
	logger := middleware.GetLogger(ctx)
	var pages []*model.Page
	result := db.WithContext(ctx).Where("document_id = ?", documentID).Order("page_number ASC").Find(&pages)
	if result.Error != nil {
		logger.Error("Error finding pages in DB",
			"error", result.Error,
			"document_id", documentID.String(),
		)
		return nil, fmt.Errorf("gormDocumentRepository.FindPages: %w", result.Error)
	}
	return pages, nil
}

// Delete はドキュメントを削除します。ページとクリック履歴は外部キーの
// ON DELETE CASCADE で一緒に消える。
func (r *gormDocumentRepository) Delete(ctx context.Context, tx *gorm.DB, userID, documentID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Document{}, documentID)
	if result.Error != nil {
		logger.Error("Error deleting document in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"document_id", documentID.String(),
		)
		return fmt.Errorf("gormDocumentRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
