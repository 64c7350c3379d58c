// internal/ingest/ocr.go
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// OCREngine は画像スキャンPDFのフォールバック経路。
// pdftoppm でページをPNGにラスタライズし、tesseract で英語OCRをかける。
// どちらのコマンドも PATH に無ければ「OCR利用不可」となり、テキスト
// レイヤーの結果（空かもしれない）をそのまま返す。取り込み自体は
// 決して失敗させない。
type OCREngine struct {
	dpi           int
	pdftoppmPath  string
	tesseractPath string
}

func newOCREngine(dpi int) *OCREngine {
	e := &OCREngine{dpi: dpi}
	// LookPath の失敗は「機能が入っていない」だけなのでエラーにしない
	e.pdftoppmPath, _ = exec.LookPath("pdftoppm")
	e.tesseractPath, _ = exec.LookPath("tesseract")
	return e
}

// Available はOCRに必要な外部コマンドが揃っているかを返します
func (e *OCREngine) Available() bool {
	return e.pdftoppmPath != "" && e.tesseractPath != ""
}

// RecognizePages は全ページをラスタライズしてOCRをかけ、ページごとの
// テキストを返します。あるページのOCRが失敗しても、そのページだけ
// fallback（元のテキストレイヤー結果）に戻し、他のページは続行する。
// 返り値の長さは常に len(fallback) と一致する。
func (e *OCREngine) RecognizePages(ctx context.Context, pdf []byte, fallback []string) []string {
	logger := slog.Default()

	if !e.Available() {
		logger.Warn("OCR tools not installed, keeping text-layer pages",
			slog.Bool("pdftoppm", e.pdftoppmPath != ""),
			slog.Bool("tesseract", e.tesseractPath != ""),
		)
		return fallback
	}

	workDir, err := os.MkdirTemp("", "readsmart-ocr-*")
	if err != nil {
		logger.Error("Failed to create OCR work dir", slog.Any("error", err))
		return fallback
	}
	defer os.RemoveAll(workDir)

	images, err := e.rasterize(ctx, workDir, pdf)
	if err != nil {
		logger.Error("PDF rasterization failed, keeping text-layer pages", slog.Any("error", err))
		return fallback
	}

	pages := make([]string, len(fallback))
	copy(pages, fallback)
	for i := range pages {
		img, ok := images[i+1] // pdftoppm のページ番号は1始まり
		if !ok {
			continue
		}
		text, err := e.recognize(ctx, img)
		if err != nil {
			// ページ単体の失敗は元テキストを維持して続行
			logger.Warn("OCR failed for page, keeping text-layer content",
				slog.Int("page", i+1), slog.Any("error", err))
			continue
		}
		pages[i] = strings.TrimSpace(text)
	}
	return pages
}

// rasterize はPDF全ページをPNGへ変換し、ページ番号→画像パスのマップを返します
func (e *OCREngine) rasterize(ctx context.Context, workDir string, pdf []byte) (map[int]string, error) {
	pdfPath := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	prefix := filepath.Join(workDir, "page")
	cmd := exec.CommandContext(ctx, e.pdftoppmPath, "-r", strconv.Itoa(e.dpi), "-png", pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	// pdftoppm は page-1.png / page-01.png のようにゼロ埋め幅が変わるため、
	// グロブして末尾の数字からページ番号を復元する
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("glob rasterized pages: %w", err)
	}
	sort.Strings(matches)

	images := make(map[int]string, len(matches))
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".png")
		numStr := base[strings.LastIndexByte(base, '-')+1:]
		nr, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		images[nr] = m
	}
	return images, nil
}

// recognize は1枚の画像に対して英語設定でOCRを実行します
func (e *OCREngine) recognize(ctx context.Context, imagePath string) (string, error) {
	// "stdout" 指定で認識結果を標準出力へ
	cmd := exec.CommandContext(ctx, e.tesseractPath, imagePath, "stdout", "-l", "eng")
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
