// internal/cache/cache_test.go
package cache

import (
	"testing"
	"time"

	"readsmart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionCache(t *testing.T) {
	def := &model.WordDefinition{
		Word:     "hello",
		Meanings: []model.Meaning{},
		Source:   model.SourceDictionaryAPI,
	}

	t.Run("正常系: SetしたものがGetで返る", func(t *testing.T) {
		c := NewDefinitionCache(time.Hour)
		c.Set("hello", def)

		got, ok := c.Get("hello")
		require.True(t, ok)
		assert.Same(t, def, got)
	})

	t.Run("正常系: 未登録の単語はミス", func(t *testing.T) {
		c := NewDefinitionCache(time.Hour)

		_, ok := c.Get("unknown")
		assert.False(t, ok)
	})

	t.Run("正常系: TTL経過後は期限切れでミスになる", func(t *testing.T) {
		c := NewDefinitionCache(10 * time.Millisecond)
		c.Set("hello", def)

		time.Sleep(30 * time.Millisecond)

		_, ok := c.Get("hello")
		assert.False(t, ok)
	})
}
