package services

import (
	"context"
	"fmt"
	"sync"

	"bsn-backend/internal/store"
	"bsn-backend/pkg/apperrors"
)

// fakeRecordStore is a call-counting in-memory double for RecordStore. Find
// serves canned per-table record sets; mutations append to journals the tests
// assert on. All methods are safe for the aggregation services' concurrent
// fetches.
type fakeRecordStore struct {
	mu sync.Mutex

	records map[string][]store.Record
	failOn  map[string]error // keyed by table, applies to every op
	byID    map[string]store.Record

	calls       int
	findFilters map[string]string // last filter seen per table
	created     []store.Record
	updated     []store.Record
	deleted     []string
	nextID      int
}

func newFakeStore() *fakeRecordStore {
	return &fakeRecordStore{
		records:     map[string][]store.Record{},
		failOn:      map[string]error{},
		byID:        map[string]store.Record{},
		findFilters: map[string]string{},
	}
}

func (f *fakeRecordStore) seed(table string, recs ...store.Record) {
	f.records[table] = append(f.records[table], recs...)
	for _, r := range recs {
		f.byID[r.ID] = r
	}
}

func (f *fakeRecordStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeRecordStore) Create(_ context.Context, table string, fields map[string]interface{}) (*store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failOn[table]; err != nil {
		return nil, err
	}
	f.nextID++
	rec := store.Record{ID: fmt.Sprintf("rec%d", f.nextID), Table: table, Fields: fields}
	f.created = append(f.created, rec)
	return &rec, nil
}

func (f *fakeRecordStore) Find(_ context.Context, table string, filter string, _ []store.Sort) ([]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.findFilters[table] = filter
	if err := f.failOn[table]; err != nil {
		return nil, err
	}
	return f.records[table], nil
}

func (f *fakeRecordStore) Update(_ context.Context, table string, id string, fields map[string]interface{}) (*store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failOn[table]; err != nil {
		return nil, err
	}
	if err := f.failOn[id]; err != nil {
		return nil, err
	}
	rec := store.Record{ID: id, Table: table, Fields: fields}
	f.updated = append(f.updated, rec)
	return &rec, nil
}

func (f *fakeRecordStore) Delete(_ context.Context, table string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failOn[table]; err != nil {
		return err
	}
	if err := f.failOn[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecordStore) FindByID(_ context.Context, table string, id string) (*store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failOn[table]; err != nil {
		return nil, err
	}
	if err := f.failOn[id]; err != nil {
		return nil, err
	}
	rec, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("findById %s %s: %w", table, id, apperrors.ErrNotFound)
	}
	return &rec, nil
}
