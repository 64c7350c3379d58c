// internal/handlers/auth_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"readsmart/internal/handlers"
	"readsmart/internal/model"
	svc_mocks "readsmart/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestAuthHandler(t *testing.T) (*handlers.AuthHandler, *svc_mocks.AuthService) {
	mockService := new(svc_mocks.AuthService)
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	handler := handlers.NewAuthHandler(mockService, logger)
	return handler, mockService
}

func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	handler, mockService := setupTestAuthHandler(t)

	user := &model.User{
		UserID: testUserID,
		Email:  "reader@example.com",
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: ユーザー登録は201",
			body: model.RegisterRequest{Email: "reader@example.com", Password: "password123"},
			setupMock: func() {
				mockService.On("Register", mock.Anything,
					&model.RegisterRequest{Email: "reader@example.com", Password: "password123"}).
					Return(user, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"email":"reader@example.com"`,
		},
		{
			name:           "異常系: メールアドレスの形式が不正",
			body:           model.RegisterRequest{Email: "not-an-email", Password: "password123"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: パスワードが短すぎる",
			body:           model.RegisterRequest{Email: "reader@example.com", Password: "short"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VALIDATION_ERROR",
		},
		{
			name: "異常系: 登録済みメールアドレスは409",
			body: model.RegisterRequest{Email: "reader@example.com", Password: "password123"},
			setupMock: func() {
				mockService.On("Register", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "DUPLICATE_EMAIL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.Mock = mock.Mock{}
			tt.setupMock()

			req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/register", tt.body)
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}

	t.Run("異常系: 未知のフィールドを含むボディは400", func(t *testing.T) {
		mockService.Mock = mock.Mock{}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"email":"reader@example.com","password":"password123","role":"admin"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_REQUEST_BODY")
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	handler, mockService := setupTestAuthHandler(t)

	t.Run("正常系: アクセストークンが返る", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("Login", mock.Anything,
			&model.LoginRequest{Email: "reader@example.com", Password: "password123"}).
			Return(&model.LoginResponse{AccessToken: "signed.jwt.token"}, nil).Once()

		req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/login",
			model.LoginRequest{Email: "reader@example.com", Password: "password123"})
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"access_token":"signed.jwt.token"`)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 認証失敗は403", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("Login", mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrForbidden)).Once()

		req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/login",
			model.LoginRequest{Email: "reader@example.com", Password: "wrong-password"})
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: パスワードなしはバリデーションエラー", func(t *testing.T) {
		mockService.Mock = mock.Mock{}

		req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/login",
			model.LoginRequest{Email: "reader@example.com"})
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
		mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}
