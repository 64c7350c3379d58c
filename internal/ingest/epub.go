// internal/ingest/epub.go
package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// extractEPUB はEPUBアーカイブ内のコンテンツ文書をアーカイブ順に辿り、
// タグを除去したテキストを1アイテム=1ページとして連結します。
// クリーニング後に空になったアイテムはページを作らない。
// EPUBは必ずテキストレイヤーを持つ前提で、OCR経路は無い。
func (p *Pipeline) extractEPUB(data []byte) (string, []string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open epub archive: %w", err)
	}

	var pages []string
	for _, f := range zr.File {
		if !isContentDocument(f.Name) {
			continue
		}
		text, err := cleanContentItem(f)
		if err != nil {
			// アイテム単体の読み込み失敗はスキップして続行
			continue
		}
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), pages, nil
}

// isContentDocument はアーカイブ内のコンテンツ文書 (XHTML/HTML) かを判定します。
// 目次や画像、CSS、メタデータ (container.xml / content.opf) は対象外。
func isContentDocument(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm":
		return true
	}
	return false
}

// cleanContentItem はアイテムの本文からタグを除去し、連続空白を1つに
// まとめてトリムした結果を返します
func cleanContentItem(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	// タグは除去ではなくスペースへ置換する。隣接する要素のテキストが
	// くっついて1語になるのを防ぐため。
	text := tagRe.ReplaceAllString(string(content), " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text), nil
}
