// Package password はパスワードの一方向ハッシュ化と検証を提供する。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost はbcryptのコストファクタのデフォルト値。
// オフライン総当たり攻撃への耐性と対話的認証のレイテンシのバランス点。
const DefaultCost = 10

// Hasher はbcryptによるパスワードハッシュ化と検証を提供する。
// ソルトはbcryptがダイジェスト内に自動で埋め込むため、別途管理しない。
type Hasher struct {
	cost int
}

// NewHasher は指定コストファクタのHasherを生成する。
// costがbcryptの許容範囲外の場合はDefaultCostを使用する。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文パスワードからbcryptダイジェストを生成する。
// 平文が72バイトを超える場合はエラーを返す（bcryptの入力上限）。
func (h *Hasher) Hash(plaintext string) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return digest, nil
}

// Verify は平文パスワードとダイジェストを比較する。
// 平文を復元することなく比較し、比較結果以外の情報を漏らさない。
func (h *Hasher) Verify(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
