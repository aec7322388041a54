// Package docstore keeps documents as JSONB rows in Postgres:
//
//	documents(collection TEXT, id TEXT, data JSONB, created_at, updated_at)
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/store"

	"github.com/jackc/pgx/v5"
)

type Store struct {
	db       database.Querier
	maxBatch int
}

func New(db database.Querier, maxBatch int) *Store {
	if maxBatch <= 0 {
		maxBatch = store.DefaultMaxBatch
	}
	return &Store{db: db, maxBatch: maxBatch}
}

func (s *Store) MaxBatch() int {
	return s.maxBatch
}

func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return decode(id, raw)
}

func (s *Store) QueryWhere(ctx context.Context, collection, field string, op store.Operator, value any) ([]store.Document, error) {
	if at, ok := value.(time.Time); ok && op.Valid() && op != store.OpArrayContains {
		return s.queryTime(ctx, collection, field, op, at.UTC())
	}
	cond, arg, err := whereClause(op, value)
	if err != nil {
		return nil, err
	}
	q := `SELECT id, data FROM documents WHERE collection = $1 AND ` + cond + ` ORDER BY id`
	return s.query(ctx, q, collection, field, arg)
}

// queryTime narrows to documents carrying field and compares in Go, so RFC 3339
// strings, epoch seconds and {"seconds": n} objects all match the way the
// in-memory store matches them. Malformed values are skipped, never cast.
func (s *Store) queryTime(ctx context.Context, collection, field string, op store.Operator, at time.Time) ([]store.Document, error) {
	docs, err := s.query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 AND data->$2::text IS NOT NULL ORDER BY id`,
		collection, field,
	)
	if err != nil {
		return nil, err
	}
	out := docs[:0]
	for _, d := range docs {
		v, _ := d.Get(field)
		if store.Match(v, op, at) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) QueryIn(ctx context.Context, collection, idField string, ids []string) ([]store.Document, error) {
	if len(ids) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d > %d", store.ErrBatchTooLarge, len(ids), s.maxBatch)
	}
	if len(ids) == 0 {
		return []store.Document{}, nil
	}
	if idField == store.FieldDocumentID {
		return s.query(ctx,
			`SELECT id, data FROM documents WHERE collection = $1 AND id = ANY($2) ORDER BY id`,
			collection, ids,
		)
	}
	return s.query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 AND data->>$2::text = ANY($3) ORDER BY id`,
		collection, idField, ids,
	)
}

func (s *Store) CreateDocument(ctx context.Context, collection, id string, data map[string]any) error {
	b, err := encode(data)
	if err != nil {
		return err
	}
	n, err := s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, id) DO NOTHING`,
		collection, id, b,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	b, err := encode(fields)
	if err != nil {
		return err
	}
	n, err := s.db.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = $4
		 WHERE collection = $1 AND id = $2`,
		collection, id, b, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	n, err := s.db.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]store.Document, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]store.Document, 0)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		d, err := decode(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var sqlOps = map[store.Operator]string{
	store.OpEqual:        "=",
	store.OpNotEqual:     "<>",
	store.OpLess:         "<",
	store.OpLessEqual:    "<=",
	store.OpGreater:      ">",
	store.OpGreaterEqual: ">=",
}

// whereClause renders the predicate on field $2 compared with $3. A document
// whose field has a different JSON type than the operand never matches.
// Timestamps go through queryTime instead.
func whereClause(op store.Operator, value any) (string, any, error) {
	if !op.Valid() {
		return "", nil, fmt.Errorf("%w: operator %q", store.ErrInvalidQuery, op)
	}
	operand, err := store.CanonicalValue(value)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", store.ErrInvalidQuery, err)
	}

	if op == store.OpArrayContains {
		b, err := json.Marshal([]any{operand})
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", store.ErrInvalidQuery, err)
		}
		return `jsonb_typeof(data->$2::text) = 'array' AND data->$2::text @> $3::jsonb`, string(b), nil
	}

	sqlOp := sqlOps[op]
	switch v := operand.(type) {
	case float64:
		return `CASE WHEN jsonb_typeof(data->$2::text) = 'number' THEN (data->>$2::text)::numeric END ` + sqlOp + ` $3`, v, nil
	case string:
		return `CASE WHEN jsonb_typeof(data->$2::text) = 'string' THEN data->>$2::text END ` + sqlOp + ` $3`, v, nil
	case bool:
		return `CASE WHEN jsonb_typeof(data->$2::text) = 'boolean' THEN (data->>$2::text)::boolean END ` + sqlOp + ` $3`, v, nil
	case nil:
		cmp := "="
		switch op {
		case store.OpEqual:
		case store.OpNotEqual:
			cmp = "<>"
		default:
			return "", nil, fmt.Errorf("%w: null only supports == and !=", store.ErrInvalidQuery)
		}
		return `jsonb_typeof(data->$2::text) ` + cmp + ` 'null' AND $3::text IS NULL`, nil, nil
	}
	return "", nil, fmt.Errorf("%w: unsupported operand type %T", store.ErrInvalidQuery, value)
}

func encode(data map[string]any) (string, error) {
	c, err := store.Canonical(data)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode(id string, raw []byte) (store.Document, error) {
	data := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return store.Document{}, fmt.Errorf("decode document %s: %w", id, err)
		}
	}
	return store.Document{ID: id, Data: data}, nil
}
