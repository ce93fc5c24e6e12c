// Package model はドメインモデルを定義する。
package model

import "time"

// Account はサービス利用アカウントを表す。
// PasswordHashはbcryptダイジェストであり、平文パスワードを保持することはない。
// PasswordHashを外部レスポンスにシリアライズしてはならない。
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials は認証試行の一時入力を表す。
// 永続化されず、ハッシュ化または比較の後に破棄される。
type Credentials struct {
	Email    string
	Password string
}
