package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// serviceName と serviceVersion はルートエンドポイントで公開するサービス情報。
const (
	serviceName    = "authgate"
	serviceVersion = "2.0.0"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックとサービス情報のHTTPハンドラー。
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health はDB接続を確認し、サービスの状態を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]string{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.checker != nil {
		if err := h.checker.PingContext(ctx); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			status = http.StatusServiceUnavailable
			body["status"] = "unavailable"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Info はサービスの概要と公開エンドポイントの一覧を返す。
// GET /
func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "running",
		"endpoints": []string{
			"POST /login - レート制限あり（15分あたり5回）",
			"POST /register - レート制限あり（15分あたり5回）",
			"GET /users - 要認証（ベアラートークン）",
			"GET /health - 公開",
		},
	})
}
