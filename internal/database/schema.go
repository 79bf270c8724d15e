package database

import (
	"context"
	"fmt"
	"log/slog"

	"creativeapp/internal/config"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
)

// Schema modes accepted in DB_SCHEMA_MODE.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// schemaPlan is what ApplySchema will do for a config.
type schemaPlan struct {
	mode    string
	runSQL  bool
	runAuto bool
}

// SchemaStatus describes the plan for a config and how far the database is from the models.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
	// Drift lists model tables and columns the live database lacks.
	Drift *SchemaDrift
	// Uncovered lists model tables and columns no SQL migration creates.
	Uncovered *SchemaDrift
}

// planSchema decides which schema steps run. The SQL migrations are written
// for postgres, so sqlite databases are always auto-migrated. Production-like
// environments never auto-migrate unless explicitly allowed.
func planSchema(cfg *config.Config) (schemaPlan, error) {
	plan := schemaPlan{mode: cfg.DBSchemaMode}
	if plan.mode == "" {
		plan.mode = SchemaModeHybrid
	}
	prodLike := cfg.IsProduction() || cfg.Env == "staging" || cfg.Env == "stage"

	if cfg.DBDriver == "sqlite" {
		if plan.mode == SchemaModeSQL {
			return plan, fmt.Errorf("DB_SCHEMA_MODE=sql requires the postgres driver")
		}
		plan.runAuto = true
		return plan, nil
	}

	switch plan.mode {
	case SchemaModeSQL:
		plan.runSQL = true
	case SchemaModeAuto:
		if prodLike && !cfg.DBAutoMigrateAllowDestructive {
			return plan, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		plan.runAuto = true
	case SchemaModeHybrid:
		plan.runSQL = true
		plan.runAuto = !prodLike
	default:
		return plan, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", plan.mode)
	}
	return plan, nil
}

// ApplySchema brings the database up to the models and fails if any model
// table or column is still missing afterwards.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.runSQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if plan.runAuto {
		if cfg.DBAutoMigrateAllowDestructive {
			observability.Logger.WarnContext(ctx, "Auto-migrating with DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true")
		}
		observability.Logger.InfoContext(ctx, "Auto-migrating models", slog.String("mode", plan.mode), slog.String("env", cfg.Env))
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	drift, err := DetectDrift(ctx, db)
	if err != nil {
		return err
	}
	if !drift.Empty() {
		return drift
	}
	return nil
}

// GetSchemaStatus reports the plan, pending migrations and drift for the config.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		WillRunSQL:         plan.runSQL,
		WillRunAutoMigrate: plan.runAuto,
	}
	if status.Drift, err = DetectDrift(ctx, db); err != nil {
		return nil, err
	}
	if !plan.runSQL {
		return status, nil
	}

	if status.AppliedVersions, err = NewMigrationStore(db).GetAppliedMigrations(ctx); err != nil {
		return nil, err
	}
	if status.PendingMigrations, err = pendingMigrations(status.AppliedVersions, migrations); err != nil {
		return nil, err
	}
	if status.Uncovered, err = migrationCoverage(db, migrations); err != nil {
		return nil, err
	}
	return status, nil
}
