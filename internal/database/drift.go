package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// SchemaDrift lists what the persistent models need but a schema lacks.
// Columns are reported as table.column.
type SchemaDrift struct {
	MissingTables  []string
	MissingColumns []string
}

// Empty reports whether the schema covers every model.
func (d *SchemaDrift) Empty() bool {
	return len(d.MissingTables) == 0 && len(d.MissingColumns) == 0
}

func (d *SchemaDrift) Error() string {
	var parts []string
	if len(d.MissingTables) > 0 {
		parts = append(parts, "missing tables: "+strings.Join(d.MissingTables, ", "))
	}
	if len(d.MissingColumns) > 0 {
		parts = append(parts, "missing columns: "+strings.Join(d.MissingColumns, ", "))
	}
	return "schema drift: " + strings.Join(parts, "; ")
}

// modelColumns maps every table of PersistentModels, including many2many
// join tables such as profile_skills, to its column names.
func modelColumns(db *gorm.DB) (map[string][]string, error) {
	columns := make(map[string][]string)
	for _, model := range PersistentModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		columns[stmt.Schema.Table] = append([]string(nil), stmt.Schema.DBNames...)
		for _, rel := range stmt.Schema.Relationships.Relations {
			if rel.JoinTable != nil {
				columns[rel.JoinTable.Table] = append([]string(nil), rel.JoinTable.DBNames...)
			}
		}
	}
	return columns, nil
}

func sortedTables(columns map[string][]string) []string {
	tables := make([]string, 0, len(columns))
	for table := range columns {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// DetectDrift compares the live database against the models.
func DetectDrift(ctx context.Context, db *gorm.DB) (*SchemaDrift, error) {
	expected, err := modelColumns(db)
	if err != nil {
		return nil, err
	}
	migrator := db.WithContext(ctx).Migrator()

	drift := &SchemaDrift{}
	for _, table := range sortedTables(expected) {
		if !migrator.HasTable(table) {
			drift.MissingTables = append(drift.MissingTables, table)
			continue
		}
		for _, column := range expected[table] {
			if !migrator.HasColumn(table, column) {
				drift.MissingColumns = append(drift.MissingColumns, table+"."+column)
			}
		}
	}
	return drift, nil
}

// migrationCoverage reports model tables and columns that no registered SQL
// migration creates. A non-empty result means the sql schema mode would leave
// the database behind the models.
func migrationCoverage(db *gorm.DB, registered []Migration) (*SchemaDrift, error) {
	expected, err := modelColumns(db)
	if err != nil {
		return nil, err
	}

	created := make(map[string]map[string]bool)
	for _, m := range registered {
		for table, cols := range m.Columns {
			if created[table] == nil {
				created[table] = make(map[string]bool)
			}
			for _, col := range cols {
				created[table][col] = true
			}
		}
	}

	drift := &SchemaDrift{}
	for _, table := range sortedTables(expected) {
		cols, ok := created[table]
		if !ok {
			drift.MissingTables = append(drift.MissingTables, table)
			continue
		}
		for _, column := range expected[table] {
			if !cols[column] {
				drift.MissingColumns = append(drift.MissingColumns, table+"."+column)
			}
		}
	}
	return drift, nil
}
