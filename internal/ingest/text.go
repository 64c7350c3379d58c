// internal/ingest/text.go
package ingest

import (
	"regexp"
	"unicode/utf8"

	"readsmart/internal/model"
)

// インライン強調マークアップの書き換えパターン。
// 太字（2連デリミタ）を先に解決しないと、斜体パターンが `**` の片側だけを
// 食ってしまうため、適用順序に意味がある。
var (
	strongAsteriskRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strongUnderscoreRe = regexp.MustCompile(`__(.+?)__`)
	emAsteriskRe       = regexp.MustCompile(`\*([^*]+)\*`)
	emUnderscoreRe     = regexp.MustCompile(`_([^_]+)_`)
)

// extractText はプレーンテキストを解析します。
// 不正なUTF-8は置換せず model.ErrEncoding で拒否する（黙って本文を
// 壊すより、明確なエラーで弾く方針）。
func (p *Pipeline) extractText(data []byte) (string, []string, error) {
	if !utf8.Valid(data) {
		return "", nil, model.ErrEncoding
	}

	text := rewriteInlineMarkup(string(data))
	pages := paginate(text, p.cfg.PageSize)
	return text, pages, nil
}

// rewriteInlineMarkup は **bold** / __bold__ → <strong>、*em* / _em_ → <em>
// に書き換えます。太字を先に解決する順序が前提（上のコメント参照）。
func rewriteInlineMarkup(text string) string {
	text = strongAsteriskRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = strongUnderscoreRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = emAsteriskRe.ReplaceAllString(text, "<em>$1</em>")
	text = emUnderscoreRe.ReplaceAllString(text, "<em>$1</em>")
	return text
}

// paginate はテキストを pageSize 文字（rune）ごとの固定長ページに分割します。
// 単語やタグの途中で切れることがあるが、これは既知の仕様であり
// 文字を落とさないこと（ページ連結 == 本文全体）だけを保証する。
func paginate(text string, pageSize int) []string {
	runes := []rune(text)
	pages := make([]string, 0, (len(runes)+pageSize-1)/pageSize)
	for i := 0; i < len(runes); i += pageSize {
		end := i + pageSize
		if end > len(runes) {
			end = len(runes)
		}
		pages = append(pages, string(runes[i:end]))
	}
	return pages
}
