package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Catalog is a SQLite index over a scenario corpus. It stores identity and
// location only (group, feature, name, example index, source file), not
// step data; listings read from here without re-parsing the corpus.
type Catalog struct {
	db *sql.DB
}

// Entry is one indexed scenario.
type Entry struct {
	// GroupPath is the scenario's category path joined with "/".
	GroupPath string

	// Feature is the feature the scenario belongs to.
	Feature string

	// Name is the scenario name.
	Name string

	// Example is the example number, nil when the scenario is not a
	// numbered example.
	Example *int

	// SourceFile is the corpus file the scenario was loaded from.
	SourceFile string

	// Position is the scenario's zero-based position in corpus order.
	Position int
}

// GroupCount is a group name with its scenario count.
type GroupCount struct {
	Name  string
	Count int
}

// Open creates or opens a catalog database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// Idempotent - safe to call multiple times.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// ReplaceAll atomically replaces the index contents with the given entries.
func (c *Catalog) ReplaceAll(entries []Entry) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scenarios"); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scenarios (group_path, feature, name, example_index, source_file, position)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var example sql.NullInt64
		if e.Example != nil {
			example = sql.NullInt64{Int64: int64(*e.Example), Valid: true}
		}
		if _, err := stmt.Exec(e.GroupPath, e.Feature, e.Name, example, e.SourceFile, e.Position); err != nil {
			return fmt.Errorf("failed to insert %s/%s: %w", e.Feature, e.Name, err)
		}
	}

	return tx.Commit()
}

// Groups returns every top-level group with its scenario count, sorted by
// group name. The top-level group is the first segment of the group path.
func (c *Catalog) Groups() ([]GroupCount, error) {
	rows, err := c.db.Query("SELECT group_path FROM scenarios")
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		counts[topLevel(path)]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	// Sorted for stable listing output.
	sort.Strings(names)

	groups := make([]GroupCount, len(names))
	for i, name := range names {
		groups[i] = GroupCount{Name: name, Count: counts[name]}
	}
	return groups, nil
}

// ScenariosInGroup returns the entries whose top-level group matches,
// in corpus order. The synthetic "uncategorized" group also matches
// entries stored with an empty group path, mirroring Groups.
func (c *Catalog) ScenariosInGroup(group string) ([]Entry, error) {
	alias := group
	if group == "uncategorized" {
		alias = ""
	}
	rows, err := c.db.Query(`
		SELECT group_path, feature, name, example_index, source_file, position
		FROM scenarios
		WHERE group_path = ? OR group_path LIKE ? OR group_path = ?
		ORDER BY position`,
		group, group+"/%", alias)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var example sql.NullInt64
		if err := rows.Scan(&e.GroupPath, &e.Feature, &e.Name, &example, &e.SourceFile, &e.Position); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		if example.Valid {
			n := int(example.Int64)
			e.Example = &n
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func topLevel(groupPath string) string {
	if groupPath == "" {
		return "uncategorized"
	}
	if i := strings.IndexByte(groupPath, '/'); i >= 0 {
		return groupPath[:i]
	}
	return groupPath
}
