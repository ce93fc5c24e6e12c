// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hitoshi/authgate/internal/metrics"
	"github.com/hitoshi/authgate/internal/model"
	"github.com/hitoshi/authgate/internal/token"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// accountIDContextKey はリクエストコンテキストにアカウントIDを格納するためのキー。
var accountIDContextKey = contextKey("account_id")

// emailContextKey はリクエストコンテキストにメールアドレスを格納するためのキー。
var emailContextKey = contextKey("email")

// TokenValidator はベアラートークンの検証に必要なインターフェース。
// token.Issuerの部分集合として定義する。
type TokenValidator interface {
	Validate(raw string) (*token.Identity, error)
}

// NewTokenAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証する
// ミドルウェアを返す。検証済みアカウントIDとメールアドレスをリクエスト
// コンテキストに注入する。
// 拒否理由は未提示・不正・期限切れの3種類に分類して返す。
func NewTokenAuthMiddleware(validator TokenValidator, collector *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				collector.RecordTokenRejected("missing")
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenMissingError())
				return
			}

			identity, err := validator.Validate(raw)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrTokenExpired):
					collector.RecordTokenRejected("expired")
					WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenExpiredError())
				case errors.Is(err, token.ErrTokenMissing):
					collector.RecordTokenRejected("missing")
					WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenMissingError())
				default:
					collector.RecordTokenRejected("malformed")
					WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenMalformedError())
				}
				return
			}

			ctx := context.WithValue(r.Context(), accountIDContextKey, identity.AccountID)
			ctx = context.WithValue(ctx, emailContextKey, identity.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken はAuthorizationヘッダーからベアラートークンを取り出す。
// ヘッダーがない、またはBearerスキームでない場合はfalseを返す。
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// AccountIDFromContext はリクエストコンテキストからアカウントIDを取得する。
// トークン認証ミドルウェアを通過したリクエストでのみ有効。
func AccountIDFromContext(ctx context.Context) (string, error) {
	accountID, ok := ctx.Value(accountIDContextKey).(string)
	if !ok || accountID == "" {
		return "", fmt.Errorf("account ID not found in context")
	}
	return accountID, nil
}

// ContextWithAccount はコンテキストにアカウントIDとメールアドレスを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithAccount(ctx context.Context, accountID, email string) context.Context {
	ctx = context.WithValue(ctx, accountIDContextKey, accountID)
	return context.WithValue(ctx, emailContextKey, email)
}
