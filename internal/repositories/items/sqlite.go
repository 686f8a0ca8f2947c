package items

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"strings"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/osrs-items/internal/entities/items"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS items (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	body BLOB NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite-backed repository.
type SQLiteConfig struct {
	// Path of the database file; it is created when missing
	Path string
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", strings.TrimSpace(cfg.Path), vb)
	return vb.Build()
}

// SQLiteRepository stores each record as a compact JSON row keyed by item ID
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLite opens the database at cfg.Path and creates the items table
func NewSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := filepath.Clean(cfg.Path)
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to open %s", path)
	}
	// conversion saves from several workers; one connection keeps writes serialized
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.IOFailuref(err, "failed to open %s", path)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.IOFailuref(err, "failed to create schema in %s", path)
	}

	return &SQLiteRepository{db: db, path: path}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.ID < 0 {
		return nil, errors.InvalidArgument(errNegativeID)
	}

	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM items WHERE id = ?`, input.ID).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("item %d not found", input.ID).WithMeta("item_id", input.ID)
		}
		return nil, errors.IOFailuref(err, "failed to read item %d", input.ID).WithMeta("path", r.path)
	}

	record, err := items.Decode(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode item %d", input.ID).WithMeta("path", r.path)
	}
	if record.ID != input.ID {
		return nil, errors.ShapeMismatchf("row %d holds item %d", input.ID, record.ID).
			WithMeta("item_id", input.ID).
			WithMeta("path", r.path)
	}

	return &GetOutput{Record: record}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Record == nil {
		return nil, errors.InvalidArgument("record is required")
	}
	if input.Record.ID < 0 {
		return nil, errors.InvalidArgument(errNegativeID)
	}
	if err := input.Record.Validate(); err != nil {
		return nil, err
	}

	body, err := input.Record.Encode(false)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO items (id, name, body) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, body = excluded.body`,
		input.Record.ID, input.Record.Name, body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save item",
			"item_id", input.Record.ID,
			"error", err)
		return nil, errors.IOFailuref(err, "failed to save item %d", input.Record.ID).WithMeta("path", r.path)
	}

	slog.DebugContext(ctx, "item saved", "item_id", input.Record.ID)

	return &SaveOutput{Path: r.path}, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.ID < 0 {
		return nil, errors.InvalidArgument(errNegativeID)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to delete item %d", input.ID).WithMeta("path", r.path)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to delete item %d", input.ID).WithMeta("path", r.path)
	}
	if n == 0 {
		return nil, errors.NotFoundf("item %d not found", input.ID).WithMeta("item_id", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM items ORDER BY id`)
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to list %s", r.path)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, errors.IOFailuref(err, "failed to list %s", r.path)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IOFailuref(err, "failed to list %s", r.path)
	}

	return &ListOutput{IDs: ids}, nil
}
