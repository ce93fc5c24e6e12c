// Package account はアカウント一覧のドメインロジックを提供する。
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/authgate/internal/model"
	"github.com/hitoshi/authgate/internal/repository"
)

// Summary はアカウント一覧の1件分。パスワードハッシュは含まれない。
type Summary struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Service はアカウント一覧のサービス層。
type Service struct {
	repo repository.AccountRepository
}

// NewService はServiceを生成する。
func NewService(repo repository.AccountRepository) *Service {
	return &Service{repo: repo}
}

// List は全アカウントを作成日時の降順で返す。
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		slog.Error("failed to list accounts", slog.String("error", err.Error()))
		return nil, model.NewStorageUnavailableError()
	}

	summaries := make([]Summary, len(accounts))
	for i, a := range accounts {
		summaries[i] = Summary{
			ID:        a.ID,
			Email:     a.Email,
			CreatedAt: a.CreatedAt,
		}
	}
	return summaries, nil
}
