package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/mkoziy/cardiorisk/internal/models"
)

var Migrations = migrate.NewMigrations()

func init() {
	// Migration 1: create tables
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*models.Assessment)(nil)).IfNotExists().Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*models.Assessment)(nil)).IfExists().Exec(ctx)
		return err
	})

	// Migration 2: indexes
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_assessments_patient_created ON assessments(patient_ref, created_at DESC)",
			"CREATE INDEX IF NOT EXISTS idx_assessments_category ON assessments(category)",
			"CREATE INDEX IF NOT EXISTS idx_assessments_modified_risk ON assessments(modified_risk DESC)",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_assessments_patient_created",
			"DROP INDEX IF EXISTS idx_assessments_category",
			"DROP INDEX IF EXISTS idx_assessments_modified_risk",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	})
}

// RunMigrations runs all pending migrations.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		return nil
	}

	fmt.Printf("Migrated to %s\n", group)
	return nil
}
