// internal/dictionary/client_test.go
package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"readsmart/internal/config"
	"readsmart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) Client {
	return NewClient(config.DictionaryConfig{
		APIURL:         baseURL,
		ConnectTimeout: 2 * time.Second,
		RequestTimeout: 5 * time.Second,
	})
}

func TestApiClient_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 釈義と発音記号をパースできる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/hello", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{
					"word": "hello",
					"phonetic": "/həˈloʊ/",
					"meanings": [
						{
							"partOfSpeech": "noun",
							"definitions": [
								{"definition": "A greeting.", "example": "she was getting polite nods and hellos"}
							]
						},
						{
							"partOfSpeech": "verb",
							"definitions": [{"definition": "To say hello."}]
						}
					]
				}
			]`))
		}))
		defer server.Close()

		def := newTestClient(server.URL).Lookup(ctx, "hello")

		require.NotNil(t, def)
		assert.Equal(t, "hello", def.Word)
		assert.Equal(t, model.SourceDictionaryAPI, def.Source)
		assert.Equal(t, "/həˈloʊ/", def.Phonetic)
		require.Len(t, def.Meanings, 2)
		assert.Equal(t, "noun", def.Meanings[0].PartOfSpeech)
		require.Len(t, def.Meanings[0].Definitions, 1)
		assert.Equal(t, "A greeting.", def.Meanings[0].Definitions[0].Definition)
		assert.Equal(t, "she was getting polite nods and hellos", def.Meanings[0].Definitions[0].Example)
	})

	t.Run("正常系: トップレベルのphoneticが無ければphoneticsリストから補完", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{
					"word": "world",
					"phonetics": [
						{"text": ""},
						{"text": "/wɜːld/"},
						{"text": "/wəːld/"}
					],
					"meanings": []
				}
			]`))
		}))
		defer server.Close()

		def := newTestClient(server.URL).Lookup(ctx, "world")

		assert.Equal(t, "/wɜːld/", def.Phonetic)
		assert.Equal(t, model.SourceDictionaryAPI, def.Source)
	})

	t.Run("正常系: 404はフォールバックになる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title":"No Definitions Found"}`))
		}))
		defer server.Close()

		def := newTestClient(server.URL).Lookup(ctx, "qwertyuiop")

		require.NotNil(t, def)
		assert.Equal(t, "qwertyuiop", def.Word)
		assert.Equal(t, model.SourceFallback, def.Source)
		assert.NotNil(t, def.Meanings)
		assert.Empty(t, def.Meanings)
	})

	t.Run("正常系: 不正なJSONはフォールバックになる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{{{ not json`))
		}))
		defer server.Close()

		def := newTestClient(server.URL).Lookup(ctx, "hello")

		assert.Equal(t, model.SourceFallback, def.Source)
	})

	t.Run("正常系: 空のエントリ配列はフォールバックになる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		def := newTestClient(server.URL).Lookup(ctx, "hello")

		assert.Equal(t, model.SourceFallback, def.Source)
	})

	t.Run("正常系: サーバー到達不能でもフォールバックが返る", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // すぐ閉じて接続拒否にする

		def := newTestClient(server.URL).Lookup(ctx, "hello")

		require.NotNil(t, def)
		assert.Equal(t, model.SourceFallback, def.Source)
	})
}
