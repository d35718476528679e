package assets

import (
	"context"
	"database/sql"
	stderrors "errors"

	// sqlite driver
	_ "modernc.org/sqlite"

	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/pkg/clock"
)

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	path       TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	body       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assets_type ON assets(type);
`

// SQLiteConfig holds the configuration for the sqlite repository
type SQLiteConfig struct {
	// Path of the database file
	Path  string
	Clock clock.Clock
}

// Validate ensures all required fields are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", c.Path, vb)
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLiteRepository opens (and creates when needed) an asset database
func NewSQLiteRepository(ctx context.Context, cfg *SQLiteConfig) (Repository, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid config")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open asset database %s", cfg.Path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrapf(err, "failed to ping asset database %s", cfg.Path)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrap(err, "failed to initialize asset schema")
	}

	return &sqliteRepository{db: db, clock: cfg.Clock}, db.Close, nil
}

var _ Repository = (*sqliteRepository)(nil)

// Get retrieves a document by path
func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Path == "" {
		return nil, errors.InvalidArgument(errPathEmpty)
	}

	rec := &Record{Path: input.Path}
	var updated int64
	err := r.db.QueryRowContext(ctx,
		`SELECT type, body, updated_at FROM assets WHERE path = ?`,
		input.Path,
	).Scan(&rec.Type, &rec.Body, &updated)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("asset %s not found", input.Path).
			WithMeta(errors.MetaAssetPath, input.Path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query asset %s", input.Path)
	}
	rec.UpdatedAt = unixMilli(updated)

	return &GetOutput{Record: rec}, nil
}

// Put creates or replaces a document
func (r *sqliteRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM assets WHERE path = ?`, input.Record.Path).Scan(&exists)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check asset %s", input.Record.Path)
	}

	now := r.clock.Now()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO assets (path, type, body, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			type = excluded.type,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, input.Record.Path, input.Record.Type, input.Record.Body, now.UnixMilli())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store asset %s", input.Record.Path)
	}
	input.Record.UpdatedAt = now

	return &PutOutput{Created: exists == 0}, nil
}

// List returns the stored documents
func (r *sqliteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	query := `SELECT path, type FROM assets ORDER BY path`
	args := []any{}
	if input.Type != "" {
		query = `SELECT path, type FROM assets WHERE type = ? ORDER BY path`
		args = append(args, input.Type)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assets")
	}
	defer func() { _ = rows.Close() }()

	out := &ListOutput{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Path, &s.Type); err != nil {
			return nil, errors.Wrap(err, "failed to scan asset row")
		}
		out.Summaries = append(out.Summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate assets")
	}
	return out, nil
}

// Delete removes a document
func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) error {
	if input.Path == "" {
		return errors.InvalidArgument(errPathEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE path = ?`, input.Path)
	if err != nil {
		return errors.Wrapf(err, "failed to delete asset %s", input.Path)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.NotFoundf("asset %s not found", input.Path).
			WithMeta(errors.MetaAssetPath, input.Path)
	}
	return nil
}
