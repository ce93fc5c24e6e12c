// Package auth はログインと登録のドメインロジックを提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/authgate/internal/model"
	"github.com/hitoshi/authgate/internal/repository"
)

// PasswordHasher はパスワードのハッシュ化と検証のインターフェース。
type PasswordHasher interface {
	Hash(plaintext string) ([]byte, error)
	Verify(plaintext string, digest []byte) bool
}

// TokenIssuer はアクセストークン発行のインターフェース。
type TokenIssuer interface {
	Issue(accountID, email string) (string, error)
}

// Result は認証成功時に呼び出し元へ返す情報。
// パスワードハッシュは含めない。
type Result struct {
	ID    string
	Email string
	Token string
}

// Service はログインと登録のビジネスロジックを提供する。
// 試行回数の制限はこのサービスの責務ではなく、前段のレートリミッターが行う。
type Service struct {
	repo   repository.AccountRepository
	hasher PasswordHasher
	issuer TokenIssuer
}

// NewService はServiceを生成する。
func NewService(repo repository.AccountRepository, hasher PasswordHasher, issuer TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
	}
}

// Login はメールアドレスとパスワードで認証し、アクセストークンを発行する。
// メール未登録とパスワード不一致は同一のINVALID_CREDENTIALSエラーを返す
// （内部ではログ用にのみ区別する）。読み取り以外の副作用はない。
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		return nil, model.NewInvalidInputError("メールアドレスとパスワードは必須です")
	}

	email = normalizeEmail(email)

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		slog.Error("failed to look up account for login", slog.String("error", err.Error()))
		return nil, model.NewStorageUnavailableError()
	}
	if account == nil {
		slog.Info("login rejected", slog.String("reason", "account_not_found"))
		return nil, model.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		slog.Info("login rejected",
			slog.String("reason", "password_mismatch"),
			slog.String("account_id", account.ID),
		)
		return nil, model.NewInvalidCredentialsError()
	}

	tokenStr, err := s.issuer.Issue(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("login succeeded", slog.String("account_id", account.ID))

	return &Result{
		ID:    account.ID,
		Email: account.Email,
		Token: tokenStr,
	}, nil
}

// Register は新規アカウントを作成し、アクセストークンを発行する。
// メールアドレスの構文とパスワード強度ポリシーを事前条件として検証する。
// 既存アカウントの検出と、ストアの一意制約違反（同時登録の競合）の
// どちらもALREADY_EXISTSに分類する。
// 失敗時に部分的な状態が残ることはない。アカウントは完全に作成されるか、全く作成されないか。
func (s *Service) Register(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		return nil, model.NewInvalidInputError("メールアドレスとパスワードは必須です")
	}

	email = normalizeEmail(email)

	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		slog.Error("failed to look up account for registration", slog.String("error", err.Error()))
		return nil, model.NewStorageUnavailableError()
	}
	if existing != nil {
		return nil, model.NewAlreadyExistsError()
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.repo.Create(ctx, email, digest)
	if err != nil {
		// 事前検索の後に同じメールが挿入される競合はここで顕在化する
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.NewAlreadyExistsError()
		}
		slog.Error("failed to create account", slog.String("error", err.Error()))
		return nil, model.NewStorageUnavailableError()
	}

	tokenStr, err := s.issuer.Issue(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("account registered", slog.String("account_id", account.ID))

	return &Result{
		ID:    account.ID,
		Email: account.Email,
		Token: tokenStr,
	}, nil
}

// normalizeEmail はメールアドレスを正規化する。前後の空白を除去し小文字に揃える。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
