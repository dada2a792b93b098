package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"career-fit-service/internal/domain"
	"career-fit-service/internal/infra/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// OpenBun opens a bun handle over the pgdriver connector for dsn.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending schema migration and returns the applied group.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("migrator init: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

// Seeder upserts assessment banks into the assessments table.
type Seeder struct {
	db *bun.DB
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

// Upsert stores a validated assessment, replacing any previous version.
func (s *Seeder) Upsert(ctx context.Context, a domain.Assessment) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("assessment %s: %w", a.ID, err)
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, data, updated_at) VALUES (?, ?::jsonb, now())
		 ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		a.ID, string(data))
	if err != nil {
		return fmt.Errorf("upsert assessment %s: %w", a.ID, err)
	}
	return nil
}
