// internal/handlers/document_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"readsmart/internal/handlers"
	"readsmart/internal/model"
	svc_mocks "readsmart/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestDocumentHandler(t *testing.T) (*handlers.DocumentHandler, *svc_mocks.DocumentService) {
	mockService := new(svc_mocks.DocumentService)
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	handler := handlers.NewDocumentHandler(mockService, logger)
	return handler, mockService
}

// newUploadRequest は multipart/form-data のアップロードリクエストを組み立てます
func newUploadRequest(t *testing.T, fieldName, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req.WithContext(authedContext())
}

func TestDocumentHandler_UploadDocument(t *testing.T) {
	handler, mockService := setupTestDocumentHandler(t)

	doc := &model.Document{
		DocumentID: uuid.New(),
		UserID:     testUserID,
		Title:      "reading-notes",
		Filename:   "reading-notes.txt",
		TotalPages: 2,
	}

	t.Run("正常系: テキストファイルのアップロード", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("UploadDocument", mock.Anything, testUserID,
			mock.MatchedBy(func(req *model.UploadDocumentRequest) bool {
				return req.Filename == "reading-notes.txt" &&
					req.ContentType == "text/plain" &&
					string(req.Data) == "hello world"
			})).Return(doc, nil).Once()

		req := newUploadRequest(t, "file", "reading-notes.txt", "text/plain", []byte("hello world"))
		rr := httptest.NewRecorder()

		handler.UploadDocument(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"title":"reading-notes"`)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: fileフィールドがない", func(t *testing.T) {
		mockService.Mock = mock.Mock{}

		req := newUploadRequest(t, "attachment", "reading-notes.txt", "text/plain", []byte("hello"))
		rr := httptest.NewRecorder()

		handler.UploadDocument(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_REQUEST_BODY")
		mockService.AssertNotCalled(t, "UploadDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: サポート外フォーマットは400", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("UploadDocument", mock.Anything, testUserID, mock.Anything).
			Return(nil, model.NewAppError("UNSUPPORTED_FORMAT", "サポートされていないファイル形式です。", "file", model.ErrUnsupportedFormat)).Once()

		req := newUploadRequest(t, "file", "archive.zip", "application/zip", []byte("PK"))
		rr := httptest.NewRecorder()

		handler.UploadDocument(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "UNSUPPORTED_FORMAT")
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 認証コンテキストなし", func(t *testing.T) {
		mockService.Mock = mock.Mock{}

		req := newUploadRequest(t, "file", "reading-notes.txt", "text/plain", []byte("hello"))
		req = req.WithContext(context.Background())
		rr := httptest.NewRecorder()

		handler.UploadDocument(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockService.AssertNotCalled(t, "UploadDocument", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentHandler_GetPage(t *testing.T) {
	handler, mockService := setupTestDocumentHandler(t)
	documentID := uuid.New()

	page := &model.Page{
		PageID:     uuid.New(),
		DocumentID: documentID,
		PageNumber: 2,
		Content:    "second page body",
	}

	newPageRequest := func(docID, pageNumber string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("document_id", docID)
		rctx.URLParams.Add("page_number", pageNumber)
		ctx := context.WithValue(authedContext(), chi.RouteCtxKey, rctx)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docID+"/pages/"+pageNumber, nil)
		return req.WithContext(ctx)
	}

	t.Run("正常系: ページを取得", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("GetPage", mock.Anything, testUserID, documentID, 2).
			Return(page, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetPage(rr, newPageRequest(documentID.String(), "2"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "second page body")
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: ページ番号が0以下", func(t *testing.T) {
		mockService.Mock = mock.Mock{}

		rr := httptest.NewRecorder()
		handler.GetPage(rr, newPageRequest(documentID.String(), "0"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "page_number")
		mockService.AssertNotCalled(t, "GetPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 範囲外のページは404", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("GetPage", mock.Anything, testUserID, documentID, 99).
			Return(nil, model.NewAppError("NOT_FOUND", "ページが見つかりません。", "page_number", model.ErrNotFound)).Once()

		rr := httptest.NewRecorder()
		handler.GetPage(rr, newPageRequest(documentID.String(), "99"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: document_idが不正な形式", func(t *testing.T) {
		mockService.Mock = mock.Mock{}

		rr := httptest.NewRecorder()
		handler.GetPage(rr, newPageRequest("not-a-uuid", "1"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_URL_PARAM")
	})
}

func TestDocumentHandler_DeleteDocument(t *testing.T) {
	handler, mockService := setupTestDocumentHandler(t)
	documentID := uuid.New()

	newDeleteRequest := func(docID string) *http.Request {
		ctx := contextWithChiURLParam(authedContext(), "document_id", docID)
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+docID, nil)
		return req.WithContext(ctx)
	}

	t.Run("正常系: 削除は204", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("DeleteDocument", mock.Anything, testUserID, documentID).
			Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.DeleteDocument(rr, newDeleteRequest(documentID.String()))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないドキュメントは404", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("DeleteDocument", mock.Anything, testUserID, documentID).
			Return(model.NewAppError("NOT_FOUND", "ドキュメントが見つかりません。", "document_id", model.ErrNotFound)).Once()

		rr := httptest.NewRecorder()
		handler.DeleteDocument(rr, newDeleteRequest(documentID.String()))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestDocumentHandler_ListDocuments(t *testing.T) {
	handler, mockService := setupTestDocumentHandler(t)

	t.Run("正常系: 一覧が空でもdocumentsはnullではなく空配列", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("ListDocuments", mock.Anything, testUserID, 0, 0).
			Return(&model.DocumentListResponse{Documents: nil, Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
		req = req.WithContext(authedContext())
		rr := httptest.NewRecorder()

		handler.ListDocuments(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"documents":[]`)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: サービスエラーは500", func(t *testing.T) {
		mockService.Mock = mock.Mock{}
		mockService.On("ListDocuments", mock.Anything, testUserID, 0, 0).
			Return(nil, errors.New("db connection lost")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
		req = req.WithContext(authedContext())
		rr := httptest.NewRecorder()

		handler.ListDocuments(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}
