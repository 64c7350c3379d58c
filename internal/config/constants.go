// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "readsmart"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultJWTExpiryMinutes = 60
	DefaultUploadDir        = "./uploads"
	DefaultMaxFileSize      = 10 * 1024 * 1024 // 10MB
)

// 取り込みパイプラインのデフォルト閾値
const (
	DefaultPageSize          = 500 // プレーンテキスト1ページの文字数
	DefaultEmptyPageMinChars = 10  // トリム後これ未満なら空ページ
	DefaultImagePageRatio    = 0.5 // 空ページ率がこれを「超えたら」画像PDF
	DefaultOCRDPI            = 300
)

// 辞書コラボレータのデフォルト値
const (
	DefaultDictionaryAPIURL         = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultDictionaryConnectTimeout = 2 * time.Second
	DefaultDictionaryRequestTimeout = 5 * time.Second
	DefaultDefinitionCacheTTL       = 24 * time.Hour
)
