// internal/handlers/document_handler.go
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"readsmart/internal/middleware"
	"readsmart/internal/model"
	"readsmart/internal/service"
	"readsmart/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	service service.DocumentService
	logger  *slog.Logger
}

func NewDocumentHandler(s service.DocumentService, logger *slog.Logger) *DocumentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentHandler{
		service: s,
		logger:  logger,
	}
}

// UploadDocument は multipart/form-data でアップロードされたファイルを
// 取り込むハンドラ。フォームのフィールド名は "file"。
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UploadDocument"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in multipart form", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "fileフィールドにファイルを指定してください。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.Any("error", err))
		appErr := model.NewAppError("INTERNAL_SERVER_ERROR", "ファイルの読み込みに失敗しました。", "", err)
		webutil.HandleError(w, logger, appErr)
		return
	}

	req := &model.UploadDocumentRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	doc, err := h.service.UploadDocument(r.Context(), userID, req)
	if err != nil {
		logger.Warn("Error uploading document in service", slog.Any("error", err), slog.String("filename", req.Filename))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Document uploaded successfully", slog.String("document_id", doc.DocumentID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, doc, logger)
}

// ListDocuments はドキュメント一覧を取得するハンドラ
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListDocuments"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.service.ListDocuments(r.Context(), userID, skip, limit)
	if err != nil {
		logger.Error("Error listing documents in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.Documents == nil {
		resp.Documents = []*model.Document{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetDocument は特定のドキュメントを取得するハンドラ
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDocument"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	documentID, appErr := parseDocumentID(r)
	if appErr != nil {
		logger.Warn("Invalid document ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}

	doc, err := h.service.GetDocument(r.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Document not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting document from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, doc, logger)
}

// GetPage はドキュメントの1ページを取得するハンドラ
func (h *DocumentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPage"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	documentID, appErr := parseDocumentID(r)
	if appErr != nil {
		logger.Warn("Invalid document ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}

	pageNumberStr := chi.URLParam(r, "page_number")
	pageNumber, err := strconv.Atoi(pageNumberStr)
	if err != nil || pageNumber < 1 {
		logger.Warn("Invalid page number in URL", slog.String("page_number", pageNumberStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "page_numberは1以上の整数で指定してください。", "page_number", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	page, err := h.service.GetPage(r.Context(), userID, documentID, pageNumber)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page, logger)
}

// DeleteDocument はドキュメントを削除するハンドラ
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDocument"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	documentID, appErr := parseDocumentID(r)
	if appErr != nil {
		logger.Warn("Invalid document ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteDocument(r.Context(), userID, documentID); err != nil {
		logger.Warn("Error deleting document in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Document deleted successfully", slog.String("document_id", documentID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func parseDocumentID(r *http.Request) (uuid.UUID, *model.AppError) {
	documentIDStr := chi.URLParam(r, "document_id")
	documentID, err := uuid.Parse(documentIDStr)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", "document_idの形式が正しくありません。", "document_id", model.ErrInvalidInput)
	}
	return documentID, nil
}
