// internal/handlers/word_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"readsmart/internal/middleware"
	"readsmart/internal/model"
	"readsmart/internal/service"
	"readsmart/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		logger:  logger,
	}
}

// LookupWord は単語の釈義を返しつつクリックを記録するハンドラ。
// クエリパラメータ: word (必須), document_id (必須)
func (h *WordHandler) LookupWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "LookupWord"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	word := r.URL.Query().Get("word")
	if word == "" {
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "wordパラメータを指定してください。", "word", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	documentIDStr := r.URL.Query().Get("document_id")
	documentID, err := uuid.Parse(documentIDStr)
	if err != nil {
		logger.Warn("Invalid document ID format in query", slog.String("document_id", documentIDStr))
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "document_idの形式が正しくありません。", "document_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	def, err := h.service.LookupWord(r.Context(), userID, documentID, word)
	if err != nil {
		logger.Warn("Error looking up word in service", slog.Any("error", err), slog.String("word", word))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word lookup completed", slog.String("word", def.Word), slog.String("source", def.Source))
	webutil.RespondWithJSON(w, http.StatusOK, def, logger)
}

// ListWords はクリック履歴の一覧を取得するハンドラ
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListWords"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	query := r.URL.Query()
	skip, _ := strconv.Atoi(query.Get("skip"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	q := model.WordListQuery{
		Skip:          skip,
		Limit:         limit,
		SortBy:        query.Get("sort_by"),
		Order:         query.Get("order"),
		MasteryStatus: model.MasteryStatus(query.Get("mastery_status")),
	}

	resp, err := h.service.ListWords(r.Context(), userID, q)
	if err != nil {
		logger.Warn("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.Words == nil {
		resp.Words = []*model.WordClick{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetWordDetail はドキュメント横断の単語集計と出現文脈を返すハンドラ
func (h *WordHandler) GetWordDetail(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordDetail"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	word := chi.URLParam(r, "word")

	detail, err := h.service.GetWordDetail(r.Context(), userID, word)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Word detail not found", slog.String("word", word))
		} else {
			logger.Error("Error getting word detail from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, detail, logger)
}

// UpdateMasteryStatus は単語の習熟ステータスを一括更新するハンドラ
func (h *WordHandler) UpdateMasteryStatus(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateMasteryStatus"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	word := chi.URLParam(r, "word")

	var req model.UpdateMasteryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	click, err := h.service.UpdateMasteryStatus(r.Context(), userID, word, req.MasteryStatus)
	if err != nil {
		logger.Warn("Error updating mastery status in service", slog.Any("error", err), slog.String("word", word))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Mastery status updated successfully", slog.String("word", word), slog.String("status", string(req.MasteryStatus)))
	webutil.RespondWithJSON(w, http.StatusOK, click, logger)
}
