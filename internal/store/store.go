package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no document exists for the given id.
var ErrNotFound = errors.New("document not found")

// Document is a single stored record. The document id is not part of Data.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Filter is a field predicate. Op is one of "==", ">=", "<=", ">", "<".
type Filter struct {
	Field string
	Op    string
	Value interface{}
}

// Query describes a predicate query over a collection.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Store is the document database the ledgers run against. Set uses merge
// semantics: fields absent from the map are preserved on existing documents.
// Delete of a non-existent id succeeds. BatchDelete commits atomically.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]*Document, error)
	BatchDelete(ctx context.Context, collection string, ids []string) error
	NewID(collection string) string
	Close() error
}

// Float coerces a stored numeric value. Firestore hands back int64 for
// documents written with integer values by other clients.
func Float(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

// String coerces a stored string value.
func String(v interface{}) string {
	s, _ := v.(string)
	return s
}

// Time coerces a stored timestamp value.
func Time(v interface{}) time.Time {
	t, _ := v.(time.Time)
	return t
}
