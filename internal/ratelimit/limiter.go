// Package ratelimit はクライアント識別子ごとの固定ウィンドウ方式の試行回数制限を提供する。
package ratelimit

import (
	"context"
	"time"
)

// Store はウィンドウ単位のカウンタを保持するキーアドレス型ストアのインターフェース。
// 単一インスタンスではインメモリ実装、複数インスタンス構成ではRedis実装を注入する。
// Incrは同一キーに対するincrement-and-checkを直列化しなければならない。
type Store interface {
	// Incr は指定キーの現在ウィンドウのカウンタをインクリメントし、加算後の値を返す。
	// ウィンドウが存在しない、または経過している場合は新しいウィンドウをカウント1で開始する。
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter は固定ウィンドウカウンタによる試行回数制限を行う。
// 固定ウィンドウ方式のため、ウィンドウ境界のバーストで一時的に
// 上限の2倍近くまで通過しうる。この脅威モデルでは許容される。
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// NewLimiter はLimiterを生成する。
// limitはウィンドウあたりの許容試行回数、windowはウィンドウ長。
func NewLimiter(store Store, limit int64, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Allow は指定識別子の試行を1回分消費し、許容範囲内かどうかを返す。
// 加算後のカウントが上限を超えた場合にfalseを返す。
func (l *Limiter) Allow(ctx context.Context, identity string) (bool, error) {
	count, err := l.store.Incr(ctx, identity, l.window)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

// Window はウィンドウ長を返す。Retry-Afterヘッダーの算出に使用する。
func (l *Limiter) Window() time.Duration {
	return l.window
}
