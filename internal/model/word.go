// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// MasteryStatus は単語の習得状態
type MasteryStatus string

const (
	MasteryNew      MasteryStatus = "new"      // 未習得
	MasteryFamiliar MasteryStatus = "familiar" // 見覚えあり
	MasteryMastered MasteryStatus = "mastered" // 習得済み
)

// Valid は定義済みの習得状態かを返します
func (s MasteryStatus) Valid() bool {
	switch s {
	case MasteryNew, MasteryFamiliar, MasteryMastered:
		return true
	}
	return false
}

// WordClick は (ユーザー, 文書, 正規化済み単語) ごとのルックアップ履歴を表します。
// 複合ユニークインデックスにより同じ組は必ず1行で、再ルックアップは
// click_count のインクリメントと last_clicked_at の更新になる。
type WordClick struct {
	WordClickID    uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_doc_word;index:idx_user_word" json:"user_id"`
	DocumentID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_doc_word" json:"document_id"`
	Word           string        `gorm:"size:100;not null;uniqueIndex:idx_user_doc_word;index:idx_user_word" json:"word"` // 小文字に正規化済み
	ClickCount     int           `gorm:"not null;default:1" json:"click_count"`
	FirstClickedAt time.Time     `gorm:"not null" json:"first_clicked_at"`
	LastClickedAt  time.Time     `gorm:"not null" json:"last_clicked_at"`
	MasteryStatus  MasteryStatus `gorm:"size:20;not null;default:new" json:"mastery_status"`
}

func (WordClick) TableName() string {
	return "word_clicks"
}

// 辞書レスポンスの出典マーカー
const (
	SourceDictionaryAPI = "dictionary-api"
	SourceFallback      = "fallback"
)

// WordDefinition は辞書コラボレータから得た（またはフォールバックの）釈義。
// Lookup は必ずこの構造体を返し、失敗しても Source で区別できる。
type WordDefinition struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic,omitempty"`
	Meanings []Meaning `json:"meanings"`
	Source   string    `json:"source"`
}

// Meaning は品詞ごとの定義グループ
type Meaning struct {
	PartOfSpeech string            `json:"partOfSpeech"`
	Definitions  []DefinitionEntry `json:"definitions"`
}

type DefinitionEntry struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// 単語一覧の絞り込み・並び替え条件
type WordListQuery struct {
	Skip          int
	Limit         int
	SortBy        string // click_count | last_clicked_at | word
	Order         string // asc | desc
	MasteryStatus MasteryStatus
}

// 習得状態更新リクエストDTO
type UpdateMasteryRequest struct {
	MasteryStatus MasteryStatus `json:"mastery_status" validate:"required,oneof=new familiar mastered"`
}

// WordContext は単語が出現したページ内の文（前後の文脈）
type WordContext struct {
	Word          string    `json:"word"`
	DocumentID    uuid.UUID `json:"document_id"`
	DocumentTitle string    `json:"document_title"`
	PageNumber    int       `json:"page_number"`
	Context       string    `json:"context"`
}

// WordDetailResponse は文書をまたいだ単語の集計ビュー
type WordDetailResponse struct {
	Word           string        `json:"word"`
	ClickCount     int           `json:"click_count"`
	FirstClickedAt time.Time     `json:"first_clicked_at"`
	LastClickedAt  time.Time     `json:"last_clicked_at"`
	MasteryStatus  MasteryStatus `json:"mastery_status"`
	Contexts       []WordContext `json:"contexts"`
}

// WordListResponse は単語一覧レスポンスDTO
type WordListResponse struct {
	Words []*WordClick `json:"words"`
	Total int64        `json:"total"`
}
