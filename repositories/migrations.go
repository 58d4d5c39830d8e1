package repositories

import (
	"context"
	"database/sql"
	"embed"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"

	"github.com/stafflane/backoffice-backend/infra"
	"github.com/stafflane/backoffice-backend/utils"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Migrater struct {
	pgConfig infra.PgConfig
}

func NewMigrater(pgConfig infra.PgConfig) Migrater {
	return Migrater{pgConfig: pgConfig}
}

func (m Migrater) Run(ctx context.Context) error {
	if err := m.runGooseMigrations(ctx); err != nil {
		return err
	}
	return m.runRiverMigrations(ctx)
}

func (m Migrater) runGooseMigrations(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Start running migrations")

	db, err := sql.Open("pgx", m.pgConfig.GetConnectionString())
	if err != nil {
		return errors.Wrap(err, "unable to connect to database")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "unable to ping database")
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db, "migrations")
}

// The task queue keeps its own schema, managed by river's migrator.
func (m Migrater) runRiverMigrations(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, m.pgConfig.GetConnectionString())
	if err != nil {
		return errors.Wrap(err, "unable to create connection pool for river migrations")
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return errors.Wrap(err, "unable to create river migrator")
	}

	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	return errors.Wrap(err, "river migrations")
}
