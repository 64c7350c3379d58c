// internal/ingest/pdf.go
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPDF はPDFからページごとのテキストレイヤーを抽出します。
// 空ページが ImagePageRatio を「超えた」場合は画像スキャンPDFとみなし
// OCRフォールバックへ。どの経路でもページ数は元PDFのページ数と一致する。
func (p *Pipeline) extractPDF(ctx context.Context, data []byte) (string, []string, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", nil, fmt.Errorf("read pdf: %w", err)
	}

	// テキストレイヤーを全ページ分取り出す。抽出に失敗したページも
	// 空文字としてスロットを確保し、ページ数の不変条件を守る。
	pages := make([]string, 0, pctx.PageCount)
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		pages = append(pages, extractPageText(pctx, pageNr))
	}

	if p.isImageBased(pages) {
		// 元のテキストレイヤー結果をページ単位のフォールバックとして渡す
		pages = p.ocr.RecognizePages(ctx, data, pages)
	}

	return strings.Join(pages, "\n"), pages, nil
}

// isEmptyPage はトリム後のテキストが閾値未満のページを「空」とみなします
func (p *Pipeline) isEmptyPage(text string) bool {
	return len([]rune(strings.TrimSpace(text))) < p.cfg.EmptyPageMinChars
}

// isImageBased は空ページの割合が閾値を厳密に超えるかを判定します。
// ちょうど50%は画像PDFとは判定しない。
func (p *Pipeline) isImageBased(pages []string) bool {
	if len(pages) == 0 {
		return false
	}
	empty := 0
	for _, page := range pages {
		if p.isEmptyPage(page) {
			empty++
		}
	}
	return float64(empty) > p.cfg.ImagePageRatio*float64(len(pages))
}

// extractPageText は1ページ分のコンテンツストリームからテキストを取り出します。
// 失敗したら空文字（呼び出し側でページスロットは維持される）。
func extractPageText(pctx *pdfmodel.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil {
		return ""
	}
	stream, err := io.ReadAll(r)
	if err != nil || len(stream) == 0 {
		return ""
	}
	return parseContentStream(stream)
}

// parseContentStream はPDFコンテンツストリームのテキスト表示オペレータ
// (Tj / TJ / ') を走査して文字列リテラルを集めます。位置決めオペレータ
// (Td / TD / T*) は区切り（スペース/改行）として扱う。
func parseContentStream(stream []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(stream, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			writeStringLiterals(&sb, line, false)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			// ' は「次行へ移動してテキスト表示」
			writeStringLiterals(&sb, line, true)
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizePageText(sb.String())
}

// pdfLiteralRe は括弧で囲まれたPDF文字列リテラルにマッチします
var pdfLiteralRe = regexp.MustCompile(`\(([^)]*)\)`)

func writeStringLiterals(sb *strings.Builder, line []byte, newline bool) {
	for _, m := range pdfLiteralRe.FindAllSubmatch(line, -1) {
		text := decodePDFLiteral(m[1])
		if text == "" {
			continue
		}
		if newline {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
}

// decodePDFLiteral はPDF文字列リテラルのエスケープ（\n \t \( \) \\ と
// 8進数表記）を解決します
func decodePDFLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				break
			}
			// 最大3桁の8進数エスケープ (例: \040)
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// normalizePageText は連続する空白を1つにまとめ、非表示文字を除去します
func normalizePageText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
