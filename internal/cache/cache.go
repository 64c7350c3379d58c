// internal/cache/cache.go
//
// Package cache は辞書検索結果のTTL付きインメモリキャッシュです。
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"readsmart/internal/model"
)

// DefinitionCache は正規化済みの単語をキーに釈義を保持します。
// フォールバック結果を入れるかどうかは呼び出し側（サービス層）の判断。
type DefinitionCache interface {
	Get(word string) (*model.WordDefinition, bool)
	Set(word string, def *model.WordDefinition)
}

type definitionCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewDefinitionCache はTTL付きキャッシュを作成します。
// クリーンアップ用のジャニターは起動せず、期限切れエントリは
// 次のGet時に捨てられる（遅延削除）。
func NewDefinitionCache(ttl time.Duration) DefinitionCache {
	return &definitionCache{
		store: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

func (c *definitionCache) Get(word string) (*model.WordDefinition, bool) {
	v, ok := c.store.Get(word)
	if !ok {
		return nil, false
	}
	def, ok := v.(*model.WordDefinition)
	return def, ok
}

func (c *definitionCache) Set(word string, def *model.WordDefinition) {
	c.store.Set(word, def, c.ttl)
}
