package database

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Migration is one versioned postgres script pair. Columns lists, per table,
// the columns the up script creates or adds.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
	Columns    map[string][]string
}

//go:embed migrations/*.sql
var migrationFS embed.FS

// migrations is loaded once from the embedded files; a malformed file name is
// a build mistake, so it panics at startup.
var migrations = mustLoadMigrations(migrationFS, "migrations")

var (
	migrationFileRe = regexp.MustCompile(`^(\d{6})_([a-z0-9_]+)\.up\.sql$`)
	createTableRe   = regexp.MustCompile(`(?is)CREATE TABLE (?:IF NOT EXISTS )?(\w+) \(\s*\n(.*?)\n\);`)
	addColumnRe     = regexp.MustCompile(`(?i)ALTER TABLE (\w+) ADD COLUMN (?:IF NOT EXISTS )?(\w+)`)
)

// tableClauses start lines inside CREATE TABLE that are constraints, not columns.
var tableClauses = map[string]bool{
	"primary": true, "check": true, "constraint": true, "unique": true, "foreign": true,
}

func mustLoadMigrations(fsys fs.FS, dir string) []Migration {
	loaded, err := loadMigrations(fsys, dir)
	if err != nil {
		panic(err)
	}
	return loaded
}

// loadMigrations reads NNNNNN_name.up.sql files and their .down.sql partners.
func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var loaded []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		match := migrationFileRe.FindStringSubmatch(name)
		if match == nil {
			return nil, fmt.Errorf("migration %s: expected NNNNNN_name.up.sql", name)
		}
		version, _ := strconv.Atoi(match[1])
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration version %06d used by %s and %s", version, other, name)
		}
		seen[version] = name

		up, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		downName := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
		down, err := fs.ReadFile(fsys, path.Join(dir, downName))
		if err != nil {
			return nil, fmt.Errorf("migration %s has no %s: %w", name, downName, err)
		}

		loaded = append(loaded, Migration{
			Version:    version,
			Name:       match[2],
			UpScript:   string(up),
			DownScript: string(down),
			Columns:    scriptColumns(string(up)),
		})
	}

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Version < loaded[j].Version })
	return loaded, nil
}

// scriptColumns extracts table columns from CREATE TABLE and ALTER TABLE ADD COLUMN statements.
func scriptColumns(script string) map[string][]string {
	columns := make(map[string][]string)
	for _, m := range createTableRe.FindAllStringSubmatch(script, -1) {
		table := strings.ToLower(m[1])
		for _, line := range strings.Split(m[2], "\n") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			col := strings.ToLower(fields[0])
			if tableClauses[col] {
				continue
			}
			columns[table] = append(columns[table], col)
		}
	}
	for _, m := range addColumnRe.FindAllStringSubmatch(script, -1) {
		table := strings.ToLower(m[1])
		columns[table] = append(columns[table], strings.ToLower(m[2]))
	}
	return columns
}

// GetMigrations returns the registered migrations in version order.
func GetMigrations() []Migration {
	return migrations
}

// GetMigrationByVersion returns the migration with version, or nil.
func GetMigrationByVersion(version int) *Migration {
	for i := range migrations {
		if migrations[i].Version == version {
			return &migrations[i]
		}
	}
	return nil
}

// Tables lists the tables the migration touches, sorted.
func (m *Migration) Tables() []string {
	tables := make([]string, 0, len(m.Columns))
	for table := range m.Columns {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}
