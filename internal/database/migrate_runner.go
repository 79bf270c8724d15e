package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"creativeapp/internal/observability"

	"gorm.io/gorm"
)

// MigrationLog records one applied SQL migration.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	Tables    string    `gorm:"size:1000"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the database table name for MigrationLog.
func (MigrationLog) TableName() string {
	return "migration_logs"
}

// MigrationStore tracks which migrations a database has applied.
type MigrationStore interface {
	GetAppliedMigrations(ctx context.Context) ([]int, error)
	ApplyMigration(ctx context.Context, m Migration) error
	RemoveMigration(ctx context.Context, m Migration) error
}

type migrationStore struct {
	db *gorm.DB
}

// NewMigrationStore creates a MigrationStore backed by the migration_logs table.
func NewMigrationStore(db *gorm.DB) MigrationStore {
	return &migrationStore{db: db}
}

// ensureTable creates migration_logs through the dialect's own DDL.
func (s *migrationStore) ensureTable(ctx context.Context) error {
	migrator := s.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&MigrationLog{}) {
		return nil
	}
	return migrator.CreateTable(&MigrationLog{})
}

func (s *migrationStore) GetAppliedMigrations(ctx context.Context) ([]int, error) {
	if !s.db.WithContext(ctx).Migrator().HasTable(&MigrationLog{}) {
		return []int{}, nil
	}
	var versions []int
	if err := s.db.WithContext(ctx).Model(&MigrationLog{}).Order("version ASC").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	return versions, nil
}

// ApplyMigration runs the up script and records it in one transaction.
func (s *migrationStore) ApplyMigration(ctx context.Context, m Migration) error {
	if err := s.ensureTable(ctx); err != nil {
		return fmt.Errorf("create migration_logs: %w", err)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.UpScript).Error; err != nil {
			return fmt.Errorf("apply %s: %w", m.String(), err)
		}
		record := &MigrationLog{Version: m.Version, Name: m.Name, Tables: strings.Join(m.Tables(), ",")}
		return tx.Create(record).Error
	})
	if err != nil {
		return err
	}
	observability.Logger.InfoContext(ctx, "Migration applied",
		slog.String("migration", m.String()),
		slog.Any("tables", m.Tables()),
	)
	return nil
}

// RemoveMigration runs the down script and forgets the version in one transaction.
func (s *migrationStore) RemoveMigration(ctx context.Context, m Migration) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.DownScript).Error; err != nil {
			return fmt.Errorf("roll back %s: %w", m.String(), err)
		}
		return tx.Where("version = ?", m.Version).Delete(&MigrationLog{}).Error
	})
	if err != nil {
		return err
	}
	observability.Logger.InfoContext(ctx, "Migration rolled back", slog.String("migration", m.String()))
	return nil
}

// pendingMigrations returns registered migrations not yet applied. A version
// in migration_logs that the binary does not know means the database was
// migrated by a newer build, and nothing is applied.
func pendingMigrations(applied []int, registered []Migration) ([]Migration, error) {
	var unknown []string
	for _, version := range applied {
		if !slices.ContainsFunc(registered, func(m Migration) bool { return m.Version == version }) {
			unknown = append(unknown, fmt.Sprintf("%06d", version))
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, fmt.Errorf("migration_logs contains versions this build does not know: %s", strings.Join(unknown, ", "))
	}

	var pending []Migration
	for _, m := range registered {
		if !slices.Contains(applied, m.Version) {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// RunMigrations applies every pending SQL migration in version order.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	return runMigrations(ctx, NewMigrationStore(db), migrations)
}

func runMigrations(ctx context.Context, store MigrationStore, registered []Migration) error {
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	pending, err := pendingMigrations(applied, registered)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		observability.Logger.DebugContext(ctx, "Schema migrations up to date", slog.Int("applied", len(applied)))
		return nil
	}
	for _, m := range pending {
		if err := store.ApplyMigration(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// RollbackMigration reverts an applied migration by version.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	return rollbackMigration(ctx, NewMigrationStore(db), migrations, version)
}

func rollbackMigration(ctx context.Context, store MigrationStore, registered []Migration, version int) error {
	idx := slices.IndexFunc(registered, func(m Migration) bool { return m.Version == version })
	if idx < 0 {
		return fmt.Errorf("migration %06d is not registered", version)
	}
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %s has not been applied", registered[idx].String())
	}
	if later := applied[len(applied)-1]; later > version {
		return fmt.Errorf("migration %06d must be rolled back before %s", later, registered[idx].String())
	}
	return store.RemoveMigration(ctx, registered[idx])
}
