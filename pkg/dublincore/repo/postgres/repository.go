package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

// Schema creates the tables used by Repository. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS dc_item (
	id              UUID PRIMARY KEY,
	kind            VARCHAR(32) NOT NULL,
	title           TEXT NOT NULL DEFAULT '',
	slug            VARCHAR(255) NOT NULL DEFAULT '',
	permalink       TEXT NOT NULL DEFAULT '',
	author_display  VARCHAR(255) NOT NULL DEFAULT '',
	author_first    VARCHAR(255) NOT NULL DEFAULT '',
	author_last     VARCHAR(255) NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	excerpt         TEXT NOT NULL DEFAULT '',
	body            TEXT NOT NULL DEFAULT '',
	keywords        TEXT NOT NULL DEFAULT '',
	categories      TEXT[] NOT NULL DEFAULT '{}',
	tags            TEXT[] NOT NULL DEFAULT '{}',
	mime_type       VARCHAR(255) NOT NULL DEFAULT '',
	parent_id       UUID REFERENCES dc_item(id),
	published_at    TIMESTAMPTZ NOT NULL,
	modified_at     TIMESTAMPTZ NOT NULL,
	deleted_at      TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS dc_item_parent_idx ON dc_item (parent_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS dc_site_options (
	id                SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	auto_dublin_core  BOOLEAN NOT NULL,
	copyright_url     TEXT NOT NULL DEFAULT '',
	updated_at        TIMESTAMPTZ NOT NULL
);
`

const itemColumns = `id, kind, title, slug, permalink, author_display, author_first, author_last,
	description, excerpt, body, keywords, categories, tags, mime_type, parent_id,
	published_at, modified_at`

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements dublincore.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// EnsureSchema creates the repository tables when they are missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return r.handlePostgresError("ensure schema", err)
	}
	return nil
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "item") {
				return fmt.Errorf("item already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: referenced record not found", dublincore.ErrInvalidParent)
		case "23502": // not_null_violation
			return fmt.Errorf("%w: required field %s is missing", dublincore.ErrInvalidItem, pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Item operations

func (r *Repository) CreateItem(ctx context.Context, item *dublincore.Item) error {
	query := `INSERT INTO dc_item (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.Exec(ctx, query,
		item.ID, string(item.Kind), item.Title, item.Slug, item.Permalink,
		item.Author.DisplayName, item.Author.FirstName, item.Author.LastName,
		item.Description, item.Excerpt, item.Body, item.Keywords,
		nonNil(item.Categories), nonNil(item.Tags), item.MimeType, item.ParentID,
		item.PublishedAt, item.ModifiedAt)
	if err != nil {
		return r.handlePostgresError("create item", err)
	}
	return nil
}

func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*dublincore.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM dc_item WHERE id = $1 AND deleted_at IS NULL`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dublincore.ErrItemNotFound
		}
		return nil, r.handlePostgresError("get item", err)
	}
	return item, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *dublincore.Item) error {
	query := `
		UPDATE dc_item SET
			kind = $2, title = $3, slug = $4, permalink = $5,
			author_display = $6, author_first = $7, author_last = $8,
			description = $9, excerpt = $10, body = $11, keywords = $12,
			categories = $13, tags = $14, mime_type = $15, modified_at = $16
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		item.ID, string(item.Kind), item.Title, item.Slug, item.Permalink,
		item.Author.DisplayName, item.Author.FirstName, item.Author.LastName,
		item.Description, item.Excerpt, item.Body, item.Keywords,
		nonNil(item.Categories), nonNil(item.Tags), item.MimeType, item.ModifiedAt)
	if err != nil {
		return r.handlePostgresError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return dublincore.ErrItemNotFound
	}
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE dc_item SET deleted_at = $2, modified_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return r.handlePostgresError("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return dublincore.ErrItemNotFound
	}
	return nil
}

func (r *Repository) ListAttachments(ctx context.Context, parentID uuid.UUID) ([]*dublincore.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM dc_item
		WHERE parent_id = $1 AND deleted_at IS NULL
		ORDER BY published_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, r.handlePostgresError("list attachments", err)
	}
	defer rows.Close()

	var items []*dublincore.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan attachment", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list attachments", err)
	}
	return items, nil
}

// Site option operations

func (r *Repository) GetOptions(ctx context.Context) (*dublincore.Options, error) {
	query := `SELECT auto_dublin_core, copyright_url FROM dc_site_options WHERE id = 1`

	var opts dublincore.Options
	err := r.db.QueryRow(ctx, query).Scan(&opts.AutoDublinCore, &opts.CopyrightURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dublincore.ErrOptionsNotFound
		}
		return nil, r.handlePostgresError("get options", err)
	}
	return &opts, nil
}

func (r *Repository) SetOptions(ctx context.Context, options *dublincore.Options) error {
	query := `
		INSERT INTO dc_site_options (id, auto_dublin_core, copyright_url, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			auto_dublin_core = EXCLUDED.auto_dublin_core,
			copyright_url = EXCLUDED.copyright_url,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, query, options.AutoDublinCore, options.CopyrightURL, time.Now().UTC()); err != nil {
		return r.handlePostgresError("set options", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*dublincore.Item, error) {
	var item dublincore.Item
	var kind string
	err := row.Scan(
		&item.ID, &kind, &item.Title, &item.Slug, &item.Permalink,
		&item.Author.DisplayName, &item.Author.FirstName, &item.Author.LastName,
		&item.Description, &item.Excerpt, &item.Body, &item.Keywords,
		&item.Categories, &item.Tags, &item.MimeType, &item.ParentID,
		&item.PublishedAt, &item.ModifiedAt)
	if err != nil {
		return nil, err
	}
	item.Kind = dublincore.ItemKind(kind)
	return &item, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
