// internal/dictionary/client.go
//
// Package dictionary は外部辞書API (dictionaryapi.dev 互換) のクライアントです。
package dictionary

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"

	"readsmart/internal/config"
	"readsmart/internal/middleware"
	"readsmart/internal/model"
)

// Client は単語の釈義を取得するコラボレータ。
// Lookup は決して失敗しない：ネットワーク障害・非200・パース不能は
// すべて Source=fallback の劣化レスポンスとして返す。
type Client interface {
	Lookup(ctx context.Context, word string) *model.WordDefinition
}

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient は接続タイムアウトとリクエスト全体のタイムアウトを持つ
// クライアントを作成します。リトライはしない（1回試してフォールバック）。
func NewClient(cfg config.DictionaryConfig) Client {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	return &apiClient{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				DialContext: dialer.DialContext,
			},
		},
	}
}

// 辞書APIのレスポンス形状 (エントリ配列)
type apiEntry struct {
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text string `json:"text"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

func (c *apiClient) Lookup(ctx context.Context, word string) *model.WordDefinition {
	logger := middleware.GetLogger(ctx).With("word", word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		logger.Warn("Failed to build dictionary request", "error", err)
		return fallbackDefinition(word)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Dictionary API unreachable, returning fallback", "error", err)
		return fallbackDefinition(word)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 未収録(404)もサービス障害も区別せずフォールバック
		logger.Info("Dictionary API returned non-200, returning fallback", "status", resp.StatusCode)
		return fallbackDefinition(word)
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		logger.Warn("Failed to decode dictionary response, returning fallback", "error", err)
		return fallbackDefinition(word)
	}
	if len(entries) == 0 {
		return fallbackDefinition(word)
	}

	return parseEntry(word, entries[0])
}

// parseEntry は先頭エントリから発音記号と品詞別の定義リストを取り出します
func parseEntry(word string, entry apiEntry) *model.WordDefinition {
	// 発音記号：トップレベルの phonetic を優先し、無ければ phonetics
	// リストで最初に値が入っているものを使う
	phonetic := entry.Phonetic
	if phonetic == "" {
		for _, ph := range entry.Phonetics {
			if ph.Text != "" {
				phonetic = ph.Text
				break
			}
		}
	}

	meanings := make([]model.Meaning, 0, len(entry.Meanings))
	for _, m := range entry.Meanings {
		defs := make([]model.DefinitionEntry, 0, len(m.Definitions))
		for _, d := range m.Definitions {
			defs = append(defs, model.DefinitionEntry{
				Definition: d.Definition,
				Example:    d.Example,
			})
		}
		meanings = append(meanings, model.Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  defs,
		})
	}

	return &model.WordDefinition{
		Word:     word,
		Phonetic: phonetic,
		Meanings: meanings,
		Source:   model.SourceDictionaryAPI,
	}
}

func fallbackDefinition(word string) *model.WordDefinition {
	return &model.WordDefinition{
		Word:     word,
		Meanings: []model.Meaning{},
		Source:   model.SourceFallback,
	}
}
