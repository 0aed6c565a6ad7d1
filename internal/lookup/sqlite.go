package lookup

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
)

const mealsSchema = `
CREATE TABLE IF NOT EXISTS meals (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	area         TEXT NOT NULL DEFAULT '',
	instructions TEXT NOT NULL DEFAULT '',
	tags         TEXT NOT NULL DEFAULT '',
	thumbnail    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_meals_name ON meals(name COLLATE NOCASE);
`

// SQLiteClient searches a local meals table in read-only mode.
type SQLiteClient struct {
	dbPath string
	dsn    string
}

// NewSQLiteClient constructs a read-only client for the database at dbPath.
func NewSQLiteClient(dbPath string) *SQLiteClient {
	trimmed := strings.TrimSpace(dbPath)
	return &SQLiteClient{
		dbPath: trimmed,
		dsn:    buildSQLiteDSN(trimmed, "ro"),
	}
}

// buildSQLiteDSN creates a file: DSN for the given path and access mode.
func buildSQLiteDSN(dbPath, mode string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", mode)
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("open meals db: %v", err), err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("ping meals db: %v", err), err)
	}
	return db, nil
}

// Search matches meal names containing query, case-insensitively, ordered by name.
func (c *SQLiteClient) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	db, err := openDB(ctx, c.dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, category, area, instructions, tags, thumbnail
		FROM meals
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY name COLLATE NOCASE, id
	`, "%"+escapeLike(strings.TrimSpace(query))+"%")
	if err != nil {
		return nil, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("query meals: %v", err), err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := []domain.Candidate{}
	for rows.Next() {
		var m meal
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Area, &m.Instructions, &m.Tags, &m.Thumbnail); err != nil {
			return nil, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("scan meal: %v", err), err)
		}
		out = append(out, m.candidate())
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("iterate meals: %v", err), err)
	}
	return out, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ImportMeals creates the meals table at dbPath if needed and upserts the
// candidates. It returns the number of rows written.
func ImportMeals(ctx context.Context, dbPath string, meals []domain.Candidate) (int, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return 0, appErrors.New(appErrors.CodeConfigurationError, "import requires a database path", nil)
	}
	db, err := openDB(ctx, buildSQLiteDSN(trimmed, "rwc"))
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = db.Close()
	}()

	if _, err := db.ExecContext(ctx, mealsSchema); err != nil {
		return 0, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("create schema: %v", err), err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("begin import: %v", err), err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO meals (id, name, category, area, instructions, tags, thumbnail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			area = excluded.area,
			instructions = excluded.instructions,
			tags = excluded.tags,
			thumbnail = excluded.thumbnail
	`)
	if err != nil {
		return 0, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("prepare import: %v", err), err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, m := range meals {
		if _, err := stmt.ExecContext(ctx, m.ID, m.Label, m.Category, m.Area, m.Instructions,
			strings.Join(m.Tags, ","), m.Thumbnail); err != nil {
			return 0, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("insert meal %s: %v", m.ID, err), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, appErrors.New(appErrors.CodeDatabase, fmt.Sprintf("commit import: %v", err), err)
	}
	return len(meals), nil
}
