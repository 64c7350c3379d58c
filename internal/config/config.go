// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	JWT struct {
		SecretKey     string `mapstructure:"secret_key"`
		ExpiryMinutes int    `mapstructure:"expiry_minutes"`
	} `mapstructure:"jwt"`
	Upload struct {
		Dir         string `mapstructure:"dir"`
		MaxFileSize int64  `mapstructure:"max_file_size"`
	} `mapstructure:"upload"`
	Ingest     IngestConfig     `mapstructure:"ingest"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
}

// IngestConfig は取り込みパイプラインのチューニング値。
// 閾値はマジックナンバーにせず必ずここを通す。
type IngestConfig struct {
	PageSize          int     `mapstructure:"page_size"`            // テキスト1ページの文字数(rune)
	EmptyPageMinChars int     `mapstructure:"empty_page_min_chars"` // これ未満は空ページ扱い
	ImagePageRatio    float64 `mapstructure:"image_page_ratio"`     // 空ページ率がこれを超えたら画像PDF
	OCRDPI            int     `mapstructure:"ocr_dpi"`
}

type DictionaryConfig struct {
	APIURL         string        `mapstructure:"api_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数でも上書きできるようにする (例: APP_DATABASE_URL)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.JWT.ExpiryMinutes <= 0 {
		Cfg.JWT.ExpiryMinutes = DefaultJWTExpiryMinutes
	}
	if Cfg.Upload.Dir == "" {
		Cfg.Upload.Dir = DefaultUploadDir
	}
	if Cfg.Upload.MaxFileSize <= 0 {
		Cfg.Upload.MaxFileSize = DefaultMaxFileSize
	}
	if Cfg.Ingest.PageSize <= 0 {
		Cfg.Ingest.PageSize = DefaultPageSize
	}
	if Cfg.Ingest.EmptyPageMinChars <= 0 {
		Cfg.Ingest.EmptyPageMinChars = DefaultEmptyPageMinChars
	}
	if Cfg.Ingest.ImagePageRatio <= 0 {
		Cfg.Ingest.ImagePageRatio = DefaultImagePageRatio
	}
	if Cfg.Ingest.OCRDPI <= 0 {
		Cfg.Ingest.OCRDPI = DefaultOCRDPI
	}
	if Cfg.Dictionary.APIURL == "" {
		Cfg.Dictionary.APIURL = DefaultDictionaryAPIURL
	}
	if Cfg.Dictionary.ConnectTimeout <= 0 {
		Cfg.Dictionary.ConnectTimeout = DefaultDictionaryConnectTimeout
	}
	if Cfg.Dictionary.RequestTimeout <= 0 {
		Cfg.Dictionary.RequestTimeout = DefaultDictionaryRequestTimeout
	}
	if Cfg.Dictionary.CacheTTL <= 0 {
		Cfg.Dictionary.CacheTTL = DefaultDefinitionCacheTTL
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Upload Dir: %s (max %d bytes)", Cfg.Upload.Dir, Cfg.Upload.MaxFileSize)
	log.Printf("Dictionary API: %s (cache TTL %s)", Cfg.Dictionary.APIURL, Cfg.Dictionary.CacheTTL)

	return nil
}
