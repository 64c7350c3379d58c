// internal/model/user.go
package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// userContextKey はコンテキストに認証済みユーザーIDを格納するためのキー型
type userContextKey struct{}

// UserIDKey は認証ミドルウェアがセットするコンテキストキー
var UserIDKey = userContextKey{}

// User はアプリケーションの利用者を表します
type User struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ユーザー登録リクエストDTO
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// JWTCustomClaims はJWTに含めるクレーム（ペイロード）
type JWTCustomClaims struct {
	jwt.RegisteredClaims // 標準クレーム (sub, exp, iat など)
}
