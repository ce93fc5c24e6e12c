// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/authgate/internal/auth"
	"github.com/hitoshi/authgate/internal/metrics"
	"github.com/hitoshi/authgate/internal/middleware"
	"github.com/hitoshi/authgate/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login はメールアドレスとパスワードで認証し、アクセストークンを発行する。
	Login(ctx context.Context, email, password string) (*auth.Result, error)
	// Register は新規アカウントを作成し、アクセストークンを発行する。
	Register(ctx context.Context, email, password string) (*auth.Result, error)
}

// AuthHandler はログイン・登録のHTTPハンドラー。
type AuthHandler struct {
	service   AuthServiceInterface
	collector *metrics.Collector
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{
		service:   service,
		collector: collector,
	}
}

// credentialsRequest はログイン・登録リクエストのボディ。
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse は認証成功時のレスポンス。
// パスワードハッシュを含むフィールドは存在しない。
type authResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login はメールアドレスとパスワードで認証し、アクセストークンを返す。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidInputError("リクエストボディを解析できません"))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.collector.RecordLogin(false)
		handleServiceError(w, err)
		return
	}

	h.collector.RecordLogin(true)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{
		ID:      result.ID,
		Email:   result.Email,
		Token:   result.Token,
		Message: "ログインしました。",
	})
}

// Register は新規アカウントを作成し、アクセストークンを返す。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidInputError("リクエストボディを解析できません"))
		return
	}

	result, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.collector.RecordRegister(false)
		handleServiceError(w, err)
		return
	}

	h.collector.RecordRegister(true)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(authResponse{
		ID:      result.ID,
		Email:   result.Email,
		Token:   result.Token,
		Message: "アカウントを登録しました。",
	})
}

// writeAPIErrorResponse は統一エラーフォーマットでレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeAlreadyExists:
		return http.StatusConflict
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case model.ErrCodeTokenMissing, model.ErrCodeTokenMalformed, model.ErrCodeTokenExpired:
		return http.StatusUnauthorized
	case model.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
