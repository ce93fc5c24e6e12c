package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix はレート制限カウンタのRedisキープレフィックス。
const redisKeyPrefix = "ratelimit:"

// RedisStore はRedisを共有ストアとする固定ウィンドウストア。
// 複数インスタンスのデプロイでカウンタを共有するために使用する。
// INCRの原子性により同一キーのincrement-and-checkは直列化される。
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore はRedisStoreを生成する。
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr は指定キーの現在ウィンドウのカウンタをインクリメントし、加算後の値を返す。
// TTL切れでキーが消えることが新しいウィンドウの開始に相当する。
// INCRとTTL設定は単一のMULTI/EXECで実行する。分離するとINCR後の障害で
// TTLのないキーが残り、そのクライアントが恒久的に制限されたままになる。
// EXPIREはNXオプション付きのため、ウィンドウ途中の再加算でTTLが延長されることはない。
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := redisKeyPrefix + key

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return count.Val(), nil
}

// compile-time interface check
var _ Store = (*RedisStore)(nil)
