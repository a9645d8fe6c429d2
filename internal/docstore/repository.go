package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type row struct {
	ID   int64          `db:"id"`
	Body types.JSONText `db:"body"`
}

func (r row) document() (Document, error) {
	var d Document
	if err := r.Body.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("decode document %d: %w", r.ID, err)
	}
	if d == nil {
		d = Document{}
	}
	d["id"] = r.ID
	return d, nil
}

type repository struct {
	db *sqlx.DB
}

// NewRepository stores every resource in the documents table as JSONB.
// Uniqueness is enforced by the partial indexes in the migrations.
func NewRepository(db *sqlx.DB) Store {
	return &repository{db: db}
}

func encodeBody(d Document) (types.JSONText, error) {
	b, err := json.Marshal(d.body())
	if err != nil {
		return nil, err
	}
	return types.JSONText(b), nil
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

func buildList(resource string, q Query) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT id, body FROM documents WHERE resource = $1")
	args := []interface{}{resource}

	for _, f := range q.Filters {
		args = append(args, f.Field, f.Value)
		fmt.Fprintf(&sb, " AND body->>$%d = $%d", len(args)-1, len(args))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		fmt.Fprintf(&sb, " AND EXISTS (SELECT 1 FROM jsonb_each_text(body) e WHERE e.value ILIKE $%d)", len(args))
	}
	sb.WriteString(" ORDER BY id")
	return sb.String(), args
}

func (r *repository) List(ctx context.Context, resource string, q Query) ([]Document, error) {
	if !isResource(resource) {
		return nil, ErrUnknownResource
	}

	query, args := buildList(resource, q)
	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(rows))
	for _, rw := range rows {
		d, err := rw.document()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, resource string, id int64) (Document, error) {
	if !isResource(resource) {
		return nil, ErrUnknownResource
	}

	var rw row
	err := r.db.GetContext(ctx, &rw, "SELECT id, body FROM documents WHERE resource = $1 AND id = $2", resource, id)
	if err != nil {
		return nil, mapError(err)
	}
	return rw.document()
}

func (r *repository) Create(ctx context.Context, resource string, doc Document) (Document, error) {
	if !isResource(resource) {
		return nil, ErrUnknownResource
	}
	body, err := encodeBody(doc)
	if err != nil {
		return nil, err
	}

	var rw row
	err = r.db.GetContext(ctx, &rw, "INSERT INTO documents (resource, body) VALUES ($1, $2) RETURNING id, body", resource, body)
	if err != nil {
		return nil, mapError(err)
	}
	return rw.document()
}

func (r *repository) Patch(ctx context.Context, resource string, id int64, doc Document) (Document, error) {
	if !isResource(resource) {
		return nil, ErrUnknownResource
	}
	body, err := encodeBody(doc)
	if err != nil {
		return nil, err
	}

	var rw row
	err = r.db.GetContext(ctx, &rw,
		"UPDATE documents SET body = body || $3::jsonb, updated_at = NOW() WHERE resource = $1 AND id = $2 RETURNING id, body",
		resource, id, body)
	if err != nil {
		return nil, mapError(err)
	}
	return rw.document()
}

func (r *repository) Replace(ctx context.Context, resource string, id int64, doc Document) (Document, error) {
	if !isResource(resource) {
		return nil, ErrUnknownResource
	}
	body, err := encodeBody(doc)
	if err != nil {
		return nil, err
	}

	var rw row
	err = r.db.GetContext(ctx, &rw,
		"UPDATE documents SET body = $3, updated_at = NOW() WHERE resource = $1 AND id = $2 RETURNING id, body",
		resource, id, body)
	if err != nil {
		return nil, mapError(err)
	}
	return rw.document()
}

func (r *repository) Delete(ctx context.Context, resource string, id int64) error {
	if !isResource(resource) {
		return ErrUnknownResource
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE resource = $1 AND id = $2", resource, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Seed(ctx context.Context, data map[string][]Document) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, resource := range Resources {
		docs := data[resource]
		if len(docs) == 0 {
			continue
		}

		var count int
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM documents WHERE resource = $1", resource); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for _, d := range docs {
			id, ok := d.ID()
			if !ok {
				return fmt.Errorf("seed %s: document without id", resource)
			}
			body, err := encodeBody(d)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO documents (id, resource, body) VALUES ($1, $2, $3)", id, resource, body); err != nil {
				return fmt.Errorf("seed %s/%d: %w", resource, id, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "SELECT setval('documents_id_seq', GREATEST((SELECT COALESCE(MAX(id), 0) FROM documents), 1))"); err != nil {
		return err
	}
	return tx.Commit()
}
