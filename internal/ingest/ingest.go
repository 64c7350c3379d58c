// internal/ingest/ingest.go
//
// Package ingest はアップロードされた文書（テキスト/PDF/EPUB）を
// 「本文全体 + ページ列」の統一表現へ変換する取り込みパイプラインです。
// アップロードワークフローからは Pipeline.Ingest だけが呼ばれます。
package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"readsmart/internal/config"
	"readsmart/internal/model"
)

// Format は判別された文書フォーマット
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatEPUB Format = "epub"
)

// Pipeline は取り込みパイプライン本体。閾値は config.IngestConfig から渡す。
type Pipeline struct {
	cfg config.IngestConfig
	ocr *OCREngine
}

func NewPipeline(cfg config.IngestConfig) *Pipeline {
	if cfg.PageSize <= 0 {
		cfg.PageSize = config.DefaultPageSize
	}
	if cfg.EmptyPageMinChars <= 0 {
		cfg.EmptyPageMinChars = config.DefaultEmptyPageMinChars
	}
	if cfg.ImagePageRatio <= 0 {
		cfg.ImagePageRatio = config.DefaultImagePageRatio
	}
	if cfg.OCRDPI <= 0 {
		cfg.OCRDPI = config.DefaultOCRDPI
	}
	return &Pipeline{
		cfg: cfg,
		ocr: newOCREngine(cfg.OCRDPI),
	}
}

// Detect は申告されたメディアタイプとファイル名からフォーマットを判別します。
// メディアタイプを優先し、空または未知の場合のみ拡張子にフォールバックする
// （クライアントの申告は当てにならないため、どちらか一致すれば受け入れる）。
func Detect(mediaType, filename string) (Format, error) {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	// "text/plain; charset=utf-8" のようなパラメータ付きを許容
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch mt {
	case "text/plain":
		return FormatText, nil
	case "application/pdf":
		return FormatPDF, nil
	case "application/epub+zip":
		return FormatEPUB, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".epub":
		return FormatEPUB, nil
	}

	return "", model.ErrUnsupportedFormat
}

// Ingest は文書データを解析し、(本文全体, ページ列) を返します。
// フォーマット不明は model.ErrUnsupportedFormat、テキストの文字化けは
// model.ErrEncoding を返す。ページ単位の抽出失敗はエラーにせず、
// そのページを空または元テキストで埋めるベストエフォート動作とする。
func (p *Pipeline) Ingest(ctx context.Context, data []byte, mediaType, filename string) (string, []string, error) {
	format, err := Detect(mediaType, filename)
	if err != nil {
		return "", nil, err
	}

	switch format {
	case FormatText:
		return p.extractText(data)
	case FormatPDF:
		return p.extractPDF(ctx, data)
	case FormatEPUB:
		return p.extractEPUB(data)
	default:
		return "", nil, model.ErrUnsupportedFormat
	}
}
