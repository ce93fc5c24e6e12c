package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/authgate/internal/metrics"
	"github.com/hitoshi/authgate/internal/middleware"
	"github.com/hitoshi/authgate/internal/ratelimit"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenValidator    middleware.TokenValidator
	CORSAllowedOrigin string
	AuthLimiter       *ratelimit.Limiter
	RateLimiter       *middleware.RateLimiter

	// サービス
	AuthService    AuthServiceInterface
	AccountService AccountServiceInterface

	// ヘルスチェック
	HealthChecker HealthChecker

	// 観測
	Logger         *slog.Logger
	Collector      *metrics.Collector
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	SecurityHeaders → CORS → Recovery → Logging → RateLimiter.Middleware()
//
// 認証エンドポイント（/login, /register）には共通ガードに加えて
// 固定ウィンドウの認証専用レート制限を適用する。両方のガードが効く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// 全ルート共通のミドルウェア
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger, deps.Collector))
	r.Use(deps.RateLimiter.Middleware())

	authHandler := NewAuthHandler(deps.AuthService, deps.Collector)
	accountHandler := NewAccountHandler(deps.AccountService)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	// --- 認証不要のルート ---
	r.Get("/", healthHandler.Info)
	r.Get("/health", healthHandler.Health)

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 認証エンドポイント ---
	// 共通ガードに加えて、固定ウィンドウの試行制限を適用する
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthRateLimitMiddleware(deps.AuthLimiter, deps.Collector))

		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	// --- ベアラートークン必須のルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewTokenAuthMiddleware(deps.TokenValidator, deps.Collector))

		r.Get("/users", accountHandler.List)
	})

	return r
}
