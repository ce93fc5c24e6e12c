// Package database はアカウントストアへの接続とスキーマ管理を提供する。
package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// accountsスキーマのマイグレーション一式。バイナリに埋め込み、
// migrateサブコマンドが外部ファイルなしで適用できるようにする。
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations はaccountsスキーマの未適用マイグレーションをすべて順番に適用する。
// スキーマが既に最新の場合は何もせず正常終了するため、起動のたびに呼んでも安全。
func RunMigrations(databaseURL string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to prepare migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
