// Package store describes the document database the job board runs on:
// named collections of JSON documents addressed by string ids.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
	ErrBatchTooLarge = errors.New("id batch exceeds store limit")
	ErrInvalidQuery  = errors.New("invalid query")
	ErrUnavailable   = errors.New("store unavailable")
)

// FieldDocumentID addresses a document's own id in QueryIn.
const FieldDocumentID = "__id__"

// DefaultMaxBatch is the id-set limit observed on the hosted document store.
const DefaultMaxBatch = 10

type Operator string

const (
	OpEqual         Operator = "=="
	OpNotEqual      Operator = "!="
	OpLess          Operator = "<"
	OpLessEqual     Operator = "<="
	OpGreater       Operator = ">"
	OpGreaterEqual  Operator = ">="
	OpArrayContains Operator = "array-contains"
)

func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpArrayContains:
		return true
	}
	return false
}

// Store is the read side every engine component depends on.
type Store interface {
	GetDocument(ctx context.Context, collection, id string) (Document, error)
	QueryWhere(ctx context.Context, collection, field string, op Operator, value any) ([]Document, error)
	// QueryIn returns the documents whose idField is one of ids. Callers must
	// keep len(ids) <= MaxBatch().
	QueryIn(ctx context.Context, collection, idField string, ids []string) ([]Document, error)
	MaxBatch() int
}

type Writer interface {
	// CreateDocument fails with ErrAlreadyExists when id is taken.
	CreateDocument(ctx context.Context, collection, id string, data map[string]any) error
	// UpdateFields merges fields into an existing document.
	UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error
	DeleteDocument(ctx context.Context, collection, id string) error
}

type DocumentStore interface {
	Store
	Writer
}

// IsPermanent reports errors that retrying cannot fix.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrBatchTooLarge) ||
		errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
