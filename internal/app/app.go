// Package app はアプリケーションの起動と依存関係のワイヤリングを提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/hitoshi/authgate/internal/account"
	"github.com/hitoshi/authgate/internal/auth"
	"github.com/hitoshi/authgate/internal/config"
	"github.com/hitoshi/authgate/internal/database"
	"github.com/hitoshi/authgate/internal/handler"
	"github.com/hitoshi/authgate/internal/logger"
	"github.com/hitoshi/authgate/internal/metrics"
	"github.com/hitoshi/authgate/internal/middleware"
	"github.com/hitoshi/authgate/internal/password"
	"github.com/hitoshi/authgate/internal/ratelimit"
	"github.com/hitoshi/authgate/internal/repository"
	"github.com/hitoshi/authgate/internal/token"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// instrumentedHasher はパスワードハッシュ化のレイテンシを計測するラッパー。
// bcryptのコストファクタ変更がレイテンシに与える影響を監視するため。
type instrumentedHasher struct {
	hasher    *password.Hasher
	collector *metrics.Collector
}

func (ih *instrumentedHasher) Hash(plaintext string) ([]byte, error) {
	start := time.Now()
	digest, err := ih.hasher.Hash(plaintext)
	ih.collector.RecordHashLatency(time.Since(start))
	return digest, err
}

func (ih *instrumentedHasher) Verify(plaintext string, digest []byte) bool {
	start := time.Now()
	ok := ih.hasher.Verify(plaintext, digest)
	ih.collector.RecordHashLatency(time.Since(start))
	return ok
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. リポジトリの初期化
	accountRepo := repository.NewPostgresAccountRepo(db)

	// 4. ドメインサービスの初期化
	hasher := &instrumentedHasher{
		hasher:    password.NewHasher(cfg.BcryptCost),
		collector: collector,
	}
	issuer := token.NewIssuer([]byte(cfg.TokenSecret), cfg.TokenTTL)

	authService := auth.NewService(accountRepo, hasher, issuer)
	accountService := account.NewService(accountRepo)

	// 5. レート制限ストアの選択
	// REDIS_ADDRが設定されている場合は複数インスタンスで試行バジェットを共有する
	var store ratelimit.Store
	var memStore *ratelimit.MemoryStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		store = ratelimit.NewRedisStore(redisClient)
		slog.Info("rate limit store: redis", slog.String("addr", cfg.RedisAddr))
	} else {
		memStore = ratelimit.NewMemoryStore(5 * time.Minute)
		defer memStore.Stop()
		store = memStore
		slog.Info("rate limit store: memory")
	}

	authLimiter := ratelimit.NewLimiter(store, int64(cfg.AuthRateLimit), cfg.AuthRateWindow)

	// 6. 全リクエスト共通のレート制限（req/min -> req/sec に変換）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.GeneralRateLimit > 0 {
		rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.GeneralRateLimit) / 60.0)
		rateLimiterCfg.GeneralBurst = cfg.GeneralRateLimit
	}
	generalLimiter := middleware.NewRateLimiter(rateLimiterCfg, collector)
	defer generalLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		TokenValidator:    issuer,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		AuthLimiter:       authLimiter,
		RateLimiter:       generalLimiter,

		AuthService:    authService,
		AccountService: accountService,

		HealthChecker: db,

		Logger:         slog.Default(),
		Collector:      collector,
		MetricsHandler: metrics.Handler(registry),
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
