//go:generate mockery --name WordClickRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"readsmart/internal/middleware"
	"readsmart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ソート可能なカラムのホワイトリスト。リクエスト由来の文字列を
// そのままORDER BYに渡さないための対応表。
var wordSortColumns = map[string]string{
	"click_count":      "click_count",
	"last_clicked_at":  "last_clicked_at",
	"first_clicked_at": "first_clicked_at",
	"word":             "word",
}

// WordClickRepository は単語クリック履歴の永続化を担当します。
type WordClickRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, userID, documentID uuid.UUID, word string, now time.Time) error
	FindByUserAndWord(ctx context.Context, db *gorm.DB, userID uuid.UUID, word string) ([]*model.WordClick, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, q model.WordListQuery) ([]*model.WordClick, int64, error)
	UpdateMasteryByWord(ctx context.Context, tx *gorm.DB, userID uuid.UUID, word string, status model.MasteryStatus) (int64, error)
}

type gormWordClickRepository struct{}

func NewGormWordClickRepository() WordClickRepository {
	return &gormWordClickRepository{}
}

// Upsert は (user_id, document_id, word) のクリックを1回分記録します。
// 既存行があれば click_count をインクリメントし last_clicked_at を更新、
// first_clicked_at と mastery_status には触らない。
func (r *gormWordClickRepository) Upsert(ctx context.Context, tx *gorm.DB, userID, documentID uuid.UUID, word string, now time.Time) error {
	logger := middleware.GetLogger(ctx)

	click := model.WordClick{
		WordClickID:    uuid.New(),
		UserID:         userID,
		DocumentID:     documentID,
		Word:           word,
		ClickCount:     1,
		FirstClickedAt: now,
		LastClickedAt:  now,
		MasteryStatus:  model.MasteryNew,
	}

	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "document_id"}, {Name: "word"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"click_count":     gorm.Expr("word_clicks.click_count + 1"),
			"last_clicked_at": now,
		}),
	}).Create(&click)
	if result.Error != nil {
		logger.Error("Error upserting word click in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"document_id", documentID.String(),
			"word", word,
		)
		return fmt.Errorf("gormWordClickRepository.Upsert: %w", result.Error)
	}
	return nil
}

// FindByUserAndWord はある単語のクリック履歴をドキュメント横断で返します。
func (r *gormWordClickRepository) FindByUserAndWord(ctx context.Context, db *gorm.DB, userID uuid.UUID, word string) ([]*model.WordClick, error) {
	logger := middleware.GetLogger(ctx)
	var clicks []*model.WordClick
	result := db.WithContext(ctx).
		Where("user_id = ? AND word = ?", userID, word).
		Order("last_clicked_at DESC").
		Find(&clicks)
	if result.Error != nil {
		logger.Error("Error finding word clicks in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"word", word,
		)
		return nil, fmt.Errorf("gormWordClickRepository.FindByUserAndWord: %w", result.Error)
	}
	if len(clicks) == 0 {
		return nil, model.ErrNotFound
	}
	return clicks, nil
}

// FindByUser はクリック履歴の一覧をページング付きで返します。
func (r *gormWordClickRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, q model.WordListQuery) ([]*model.WordClick, int64, error) {
	logger := middleware.GetLogger(ctx)

	base := db.WithContext(ctx).Model(&model.WordClick{}).Where("user_id = ?", userID)
	if q.MasteryStatus != "" {
		base = base.Where("mastery_status = ?", q.MasteryStatus)
	}
	// CountとFindで同じ条件を使い回すためセッションを切る
	base = base.Session(&gorm.Session{})

	var total int64
	if result := base.Count(&total); result.Error != nil {
		logger.Error("Error counting word clicks in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, 0, fmt.Errorf("gormWordClickRepository.FindByUser count: %w", result.Error)
	}

	column, ok := wordSortColumns[q.SortBy]
	if !ok {
		column = "last_clicked_at"
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}

	var clicks []*model.WordClick
	result := base.
		Order(column + " " + direction).
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&clicks)
	if result.Error != nil {
		logger.Error("Error finding word clicks by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, 0, fmt.Errorf("gormWordClickRepository.FindByUser: %w", result.Error)
	}
	return clicks, total, nil
}

// UpdateMasteryByWord はある単語の習熟ステータスをドキュメント横断で
// 一括更新し、更新された行数を返します。
func (r *gormWordClickRepository) UpdateMasteryByWord(ctx context.Context, tx *gorm.DB, userID uuid.UUID, word string, status model.MasteryStatus) (int64, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.WordClick{}).
		Where("user_id = ? AND word = ?", userID, word).
		Update("mastery_status", status)
	if result.Error != nil {
		logger.Error("Error updating mastery status in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"word", word,
		)
		return 0, fmt.Errorf("gormWordClickRepository.UpdateMasteryByWord: %w", result.Error)
	}
	return result.RowsAffected, nil
}
