package store

import "context"

// Record is the universal entity returned by the record store. Audit stamps
// (created_at, updated_at, created_by, updated_by) live inside Fields like any
// other column; the store has no schema of its own.
type Record struct {
	ID     string
	Table  string
	Fields map[string]interface{}
}

// Flatten merges the record id into its fields, matching the wire shape the
// API exposes to clients.
func (r *Record) Flatten() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	return out
}

// Sort is one element of the store's ordered sort specification.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// RecordStore is the five-operation boundary to the backing store. Filter is an
// opaque predicate in the store's own formula language; this layer composes it
// as a string and never parses it. Implementations do not retry and do not
// cache.
type RecordStore interface {
	Create(ctx context.Context, table string, fields map[string]interface{}) (*Record, error)
	Find(ctx context.Context, table string, filter string, sort []Sort) ([]Record, error)
	Update(ctx context.Context, table string, id string, fields map[string]interface{}) (*Record, error)
	Delete(ctx context.Context, table string, id string) error
	FindByID(ctx context.Context, table string, id string) (*Record, error)
}
