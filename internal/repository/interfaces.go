// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/authgate/internal/model"
)

// ErrDuplicateEmail はメールアドレスの一意制約違反を表すセンチネルエラー。
// 事前検索をすり抜けた同時登録の競合で発生する。
// フローはこれをALREADY_EXISTSに分類しなければならない。
var ErrDuplicateEmail = errors.New("account email already exists")

// AccountRepository はアカウントデータの永続化インターフェース。
type AccountRepository interface {
	// FindByEmail は指定メールアドレスのアカウントを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// Create はアカウントを作成する。IDとCreatedAtはこの層で採番する。
	// メールアドレスが既に存在する場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, email string, passwordHash []byte) (*model.Account, error)

	// FindAll は全アカウントを作成日時の降順で返す。
	// 返されるAccountのPasswordHashは常に空とする。
	FindAll(ctx context.Context) ([]*model.Account, error)
}
