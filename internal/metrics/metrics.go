// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector は認証関連のPrometheusメトリクスを収集する。
// nilレシーバでも全メソッドが安全に動作するため、メトリクスが不要な構成では
// nilのまま注入できる。
type Collector struct {
	loginSuccess    prometheus.Counter
	loginFailure    prometheus.Counter
	registerSuccess prometheus.Counter
	registerFailure prometheus.Counter
	rateLimited     *prometheus.CounterVec
	tokenRejected   *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	hashLatency     prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_login_success_total",
			Help: "ログイン成功の合計数",
		}),
		loginFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_login_failure_total",
			Help: "ログイン失敗の合計数",
		}),
		registerSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_register_success_total",
			Help: "アカウント登録成功の合計数",
		}),
		registerFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_register_failure_total",
			Help: "アカウント登録失敗の合計数",
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authgate_rate_limited_total",
			Help: "レート制限による拒否数（ガード種別ごと）",
		}, []string{"guard"}),
		tokenRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authgate_token_rejected_total",
			Help: "トークン検証失敗の合計数（理由ごと）",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authgate_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		hashLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authgate_hash_duration_seconds",
			Help:    "パスワードハッシュ化のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFailure,
		c.registerSuccess,
		c.registerFailure,
		c.rateLimited,
		c.tokenRejected,
		c.httpStatus,
		c.hashLatency,
	)

	return c
}

// RecordLogin はログイン試行の結果を記録する。
func (c *Collector) RecordLogin(success bool) {
	if c == nil {
		return
	}
	if success {
		c.loginSuccess.Inc()
	} else {
		c.loginFailure.Inc()
	}
}

// RecordRegister はアカウント登録試行の結果を記録する。
func (c *Collector) RecordRegister(success bool) {
	if c == nil {
		return
	}
	if success {
		c.registerSuccess.Inc()
	} else {
		c.registerFailure.Inc()
	}
}

// RecordRateLimited はレート制限による拒否を記録する。
// guardは"auth"または"general"。
func (c *Collector) RecordRateLimited(guard string) {
	if c == nil {
		return
	}
	c.rateLimited.WithLabelValues(guard).Inc()
}

// RecordTokenRejected はトークン検証失敗を記録する。
// reasonは"missing"、"malformed"、"expired"のいずれか。
func (c *Collector) RecordTokenRejected(reason string) {
	if c == nil {
		return
	}
	c.tokenRejected.WithLabelValues(reason).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	if c == nil {
		return
	}
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordHashLatency はパスワードハッシュ化のレイテンシを記録する。
func (c *Collector) RecordHashLatency(duration time.Duration) {
	if c == nil {
		return
	}
	c.hashLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
