package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/authgate/internal/account"
)

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	// List は全アカウントを作成日時の降順で返す。
	List(ctx context.Context) ([]account.Summary, error)
}

// AccountHandler はアカウント一覧のHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// accountResponse はアカウント一覧の1件分のAPIレスポンス。
type accountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// List は全アカウントの一覧を返す。トークン認証ミドルウェアの通過が前提。
// GET /users
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]accountResponse, len(summaries))
	for i, s := range summaries {
		results[i] = accountResponse{
			ID:        s.ID,
			Email:     s.Email,
			CreatedAt: s.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
