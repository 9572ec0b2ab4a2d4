package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/offerstack/compare-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS compare_runs (
	id         TEXT PRIMARY KEY,
	category   TEXT NOT NULL,
	selection  TEXT NOT NULL,
	result     TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS catalog_loads (
	id             TEXT PRIMARY KEY,
	category       TEXT NOT NULL,
	product_count  INTEGER NOT NULL,
	editors_choice INTEGER NOT NULL DEFAULT 0,
	loaded_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_compare_runs_category ON compare_runs(category);
CREATE INDEX IF NOT EXISTS idx_compare_runs_created_at ON compare_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_catalog_loads_category ON catalog_loads(category);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, category model.Category, selection []string, result *model.ComparisonResult) (*model.CompareRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	selectionJSON, err := json.Marshal(selection)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal selection")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO compare_runs (id, category, selection, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(category), string(selectionJSON), string(resultJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.CompareRun{
		ID:        id,
		Category:  category,
		Selection: selection,
		Result:    result,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.CompareRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, selection, result, created_at FROM compare_runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.CompareRun, error) {
	query := `SELECT id, category, selection, result, created_at FROM compare_runs WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.CompareRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func (s *SQLiteStore) RecordCatalogLoad(ctx context.Context, category model.Category, productCount int, editorsChoice bool) (*model.CatalogLoad, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	choice := 0
	if editorsChoice {
		choice = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO catalog_loads (id, category, product_count, editors_choice, loaded_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(category), productCount, choice, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert catalog load")
	}

	return &model.CatalogLoad{
		ID:            id,
		Category:      category,
		ProductCount:  productCount,
		EditorsChoice: editorsChoice,
		LoadedAt:      now,
	}, nil
}

func (s *SQLiteStore) LatestCatalogLoad(ctx context.Context, category model.Category) (*model.CatalogLoad, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, product_count, editors_choice, loaded_at FROM catalog_loads
		 WHERE category = ? ORDER BY loaded_at DESC LIMIT 1`,
		string(category),
	)

	var cl model.CatalogLoad
	var choice int
	err := row.Scan(&cl.ID, &cl.Category, &cl.ProductCount, &choice, &cl.LoadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest catalog load")
	}
	cl.EditorsChoice = choice == 1
	return &cl, nil
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.CompareRun, error) {
	var r model.CompareRun
	var selectionJSON string
	var resultJSON sql.NullString

	err := row.Scan(&r.ID, &r.Category, &selectionJSON, &resultJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}

	if err := json.Unmarshal([]byte(selectionJSON), &r.Selection); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal selection")
	}
	if resultJSON.Valid && resultJSON.String != "null" {
		r.Result = &model.ComparisonResult{}
		if err := json.Unmarshal([]byte(resultJSON.String), r.Result); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal result")
		}
	}
	return &r, nil
}
