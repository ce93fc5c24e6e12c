package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

// PostgresAccountRepoはAccountRepositoryインターフェースを満たすことを検証
func TestPostgresAccountRepo_ImplementsInterface(t *testing.T) {
	var _ AccountRepository = (*PostgresAccountRepo)(nil)
}

// NewPostgresAccountRepoが正しく初期化されることを検証
func TestNewPostgresAccountRepo_Initializes(t *testing.T) {
	repo := NewPostgresAccountRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// 一意制約違反のエラーコードが定数と一致することを検証
// （DB接続なしでエラー分類のロジックのみ検証）
func TestPgUniqueViolation_Code(t *testing.T) {
	pqErr := &pq.Error{Code: pq.ErrorCode("23505")}

	if string(pqErr.Code) != pgUniqueViolation {
		t.Errorf("pgUniqueViolation = %q, want %q", pgUniqueViolation, pqErr.Code)
	}
}

// ErrDuplicateEmailがラップされてもerrors.Isで判別できることを検証
func TestErrDuplicateEmail_IsSentinel(t *testing.T) {
	wrapped := fmt.Errorf("create account: %w", ErrDuplicateEmail)

	if !errors.Is(wrapped, ErrDuplicateEmail) {
		t.Error("wrapped error should match ErrDuplicateEmail")
	}
}
