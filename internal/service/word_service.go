package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"readsmart/internal/cache"
	"readsmart/internal/dictionary"
	"readsmart/internal/middleware"
	"readsmart/internal/model"
	"readsmart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordService は単語の検索・クリック集計・習熟管理を担当します。
type WordService interface {
	LookupWord(ctx context.Context, userID, documentID uuid.UUID, word string) (*model.WordDefinition, error)
	ListWords(ctx context.Context, userID uuid.UUID, q model.WordListQuery) (*model.WordListResponse, error)
	GetWordDetail(ctx context.Context, userID uuid.UUID, word string) (*model.WordDetailResponse, error)
	UpdateMasteryStatus(ctx context.Context, userID uuid.UUID, word string, status model.MasteryStatus) (*model.WordClick, error)
}

type wordService struct {
	db        *gorm.DB
	clickRepo repository.WordClickRepository
	docRepo   repository.DocumentRepository
	dict      dictionary.Client
	defCache  cache.DefinitionCache
}

func NewWordService(db *gorm.DB, clickRepo repository.WordClickRepository, docRepo repository.DocumentRepository, dict dictionary.Client, defCache cache.DefinitionCache) WordService {
	return &wordService{
		db:        db,
		clickRepo: clickRepo,
		docRepo:   docRepo,
		dict:      dict,
		defCache:  defCache,
	}
}

// normalizeWord は検索キーを正規化します。履歴・キャッシュともこのキーで引く。
func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// LookupWord は単語の釈義を返しつつ、クリックを1回分記録します。
// キャッシュヒットでもクリックの記録は必ず行う（表示1回 = クリック1回）。
func (s *wordService) LookupWord(ctx context.Context, userID, documentID uuid.UUID, word string) (*model.WordDefinition, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "word", word)

	normalized := normalizeWord(word)
	if normalized == "" {
		return nil, model.NewAppError("INVALID_WORD", "単語を指定してください。", "word", model.ErrInvalidInput)
	}

	// 他人のドキュメントに対するクリック記録を防ぐため、所有者チェック
	if _, err := s.docRepo.FindByID(ctx, s.db, userID, documentID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DOCUMENT_NOT_FOUND", "ドキュメントが見つかりません。", "document_id", model.ErrNotFound)
		}
		logger.Error("Error checking document ownership", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	def, hit := s.defCache.Get(normalized)
	if !hit {
		def = s.dict.Lookup(ctx, normalized)
		// フォールバック結果はキャッシュしない。辞書APIが復旧したら
		// 次回の検索で本物の釈義を取りに行けるように。
		if def.Source == model.SourceDictionaryAPI {
			s.defCache.Set(normalized, def)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.clickRepo.Upsert(ctx, tx, userID, documentID, normalized, time.Now())
	})
	if err != nil {
		logger.Error("Failed to record word click", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クリック履歴の記録に失敗しました。", "", err)
	}

	logger.Debug("Word lookup completed", "cache_hit", hit, "source", def.Source)
	return def, nil
}

// ListWords はクリック履歴の一覧を返します
func (s *wordService) ListWords(ctx context.Context, userID uuid.UUID, q model.WordListQuery) (*model.WordListResponse, error) {
	logger := middleware.GetLogger(ctx)

	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.MasteryStatus != "" && !q.MasteryStatus.Valid() {
		return nil, model.NewAppError("INVALID_STATUS", "指定できない習熟ステータスです。", "mastery_status", model.ErrInvalidInput)
	}

	clicks, total, err := s.clickRepo.FindByUser(ctx, s.db, userID, q)
	if err != nil {
		logger.Error("Error listing word clicks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return &model.WordListResponse{Words: clicks, Total: total}, nil
}

// GetWordDetail はある単語のクリック履歴をドキュメント横断で集計し、
// 出現文脈（ページごとに1文）を添えて返します。
func (s *wordService) GetWordDetail(ctx context.Context, userID uuid.UUID, word string) (*model.WordDetailResponse, error) {
	logger := middleware.GetLogger(ctx)

	normalized := normalizeWord(word)
	if normalized == "" {
		return nil, model.NewAppError("INVALID_WORD", "単語を指定してください。", "word", model.ErrInvalidInput)
	}

	clicks, err := s.clickRepo.FindByUserAndWord(ctx, s.db, userID, normalized)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("WORD_NOT_FOUND", "この単語のクリック履歴がありません。", "word", model.ErrNotFound)
		}
		logger.Error("Error finding word clicks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	detail := aggregateClicks(normalized, clicks)

	// 出現文脈の収集。ドキュメントが消えている場合などは黙ってスキップ
	for _, click := range clicks {
		doc, err := s.docRepo.FindByID(ctx, s.db, userID, click.DocumentID)
		if err != nil {
			continue
		}
		pages, err := s.docRepo.FindPages(ctx, s.db, click.DocumentID)
		if err != nil {
			continue
		}
		for _, page := range pages {
			sentence, ok := findSentence(page.Content, normalized)
			if !ok {
				continue
			}
			detail.Contexts = append(detail.Contexts, model.WordContext{
				Word:          normalized,
				DocumentID:    doc.DocumentID,
				DocumentTitle: doc.Title,
				PageNumber:    page.PageNumber,
				Context:       sentence,
			})
		}
	}

	return detail, nil
}

// aggregateClicks はドキュメントごとのクリック行を1つの集計に畳み込みます。
// 回数は合計、初回は最小、最終は最大、習熟ステータスは最後にクリックした
// 行のものを採用する。
func aggregateClicks(word string, clicks []*model.WordClick) *model.WordDetailResponse {
	detail := &model.WordDetailResponse{
		Word:           word,
		FirstClickedAt: clicks[0].FirstClickedAt,
		LastClickedAt:  clicks[0].LastClickedAt,
		MasteryStatus:  clicks[0].MasteryStatus,
		Contexts:       []model.WordContext{},
	}
	for _, click := range clicks {
		detail.ClickCount += click.ClickCount
		if click.FirstClickedAt.Before(detail.FirstClickedAt) {
			detail.FirstClickedAt = click.FirstClickedAt
		}
		if click.LastClickedAt.After(detail.LastClickedAt) {
			detail.LastClickedAt = click.LastClickedAt
			detail.MasteryStatus = click.MasteryStatus
		}
	}
	return detail
}

// findSentence は本文を「.」で文に区切り、単語を含む最初の文を返します。
// 大文字小文字は無視して突き合わせる。
func findSentence(content, word string) (string, bool) {
	lowerWord := strings.ToLower(word)
	for _, sentence := range strings.Split(content, ".") {
		if strings.Contains(strings.ToLower(sentence), lowerWord) {
			return strings.TrimSpace(sentence), true
		}
	}
	return "", false
}

// UpdateMasteryStatus はある単語の習熟ステータスをドキュメント横断で
// 一括更新します。1行も更新されなければ履歴なしとして404相当を返す。
func (s *wordService) UpdateMasteryStatus(ctx context.Context, userID uuid.UUID, word string, status model.MasteryStatus) (*model.WordClick, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "word", word)

	normalized := normalizeWord(word)
	if normalized == "" {
		return nil, model.NewAppError("INVALID_WORD", "単語を指定してください。", "word", model.ErrInvalidInput)
	}
	if !status.Valid() {
		return nil, model.NewAppError("INVALID_STATUS", "指定できない習熟ステータスです。", "mastery_status", model.ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.clickRepo.UpdateMasteryByWord(ctx, tx, userID, normalized, status)
		if err != nil {
			return err
		}
		if rows == 0 {
			return model.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("WORD_NOT_FOUND", "この単語のクリック履歴がありません。", "word", model.ErrNotFound)
		}
		logger.Error("Failed to update mastery status", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "習熟ステータスの更新に失敗しました。", "", err)
	}

	// 更新後の代表行（最後にクリックしたもの）を返す
	clicks, err := s.clickRepo.FindByUserAndWord(ctx, s.db, userID, normalized)
	if err != nil {
		logger.Error("Failed to re-fetch word click after update", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	logger.Info("Mastery status updated", "status", status)
	return clicks[0], nil
}
