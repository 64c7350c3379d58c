// internal/model/document.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Document はアップロードされた読み物（解析済み本文とページ構成）を表します。
// Pages / WordClicks は文書削除時にDBのカスケード制約で一緒に削除される。
type Document struct {
	DocumentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"document_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Title      string    `gorm:"not null" json:"title"`
	Filename   string    `gorm:"not null" json:"filename"`
	FilePath   string    `gorm:"not null" json:"-"` // ブロブストレージ上の保存先
	Content    string    `gorm:"type:text" json:"content"`
	TotalPages int       `gorm:"not null;default:0" json:"total_pages"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Pages      []Page      `gorm:"foreignKey:DocumentID;references:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
	WordClicks []WordClick `gorm:"foreignKey:DocumentID;references:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// Page は文書の1ページ分の本文。page_number は 1 始まりで抜けなし。
type Page struct {
	PageID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"page_id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_document_page" json:"document_id"`
	PageNumber int       `gorm:"not null;uniqueIndex:idx_document_page" json:"page_number"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Page) TableName() string {
	return "pages"
}

// 文書アップロードリクエスト（multipartから組み立てる内部DTO）
type UploadDocumentRequest struct {
	Filename    string
	ContentType string
	Data        []byte
}

// 文書一覧レスポンスDTO
type DocumentListResponse struct {
	Documents []*Document `json:"documents"`
	Total     int64       `json:"total"`
}
