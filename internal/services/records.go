package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bsn-backend/internal/audit"
	"bsn-backend/internal/scope"
	"bsn-backend/internal/store"
	"bsn-backend/internal/tables"
	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/types"
)

// RecordService implements the table-agnostic single-record operations every
// business route is built on: table validation before any I/O, branch scoping
// on reads, branch injection and audit stamping on writes.
type RecordService struct {
	store   store.RecordStore
	scope   scope.Policy
	stamper *audit.Stamper
	trail   *audit.Trail
	logger  *zap.Logger
}

func NewRecordService(recordStore store.RecordStore, policy scope.Policy, stamper *audit.Stamper, trail *audit.Trail, logger *zap.Logger) *RecordService {
	return &RecordService{
		store:   recordStore,
		scope:   policy,
		stamper: stamper,
		trail:   trail,
		logger:  logger,
	}
}

var defaultSort = []store.Sort{{Field: "created_at", Direction: "desc"}}

// List fetches records, conjoining the caller's branch clause where the table
// requires it. The limit is applied after the store returns, matching the
// store's page-walking list semantics.
func (s *RecordService) List(ctx context.Context, identity types.Identity, tableName, filter string, sort []store.Sort, limit int) ([]map[string]interface{}, error) {
	table, err := tables.Parse(tableName)
	if err != nil {
		return nil, err
	}

	effectiveFilter := s.scope.ScopeFilter(identity, table, filter)
	if len(sort) == 0 {
		sort = defaultSort
	}

	records, err := s.store.Find(ctx, table.String(), effectiveFilter, sort)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	out := make([]map[string]interface{}, 0, len(records))
	for i := range records {
		out = append(out, records[i].Flatten())
	}
	return out, nil
}

// Get fetches one record by id. Branch-bound callers cannot observe records
// outside their branch even with a valid id in hand.
func (s *RecordService) Get(ctx context.Context, identity types.Identity, tableName, id string) (map[string]interface{}, error) {
	table, err := tables.Parse(tableName)
	if err != nil {
		return nil, err
	}

	record, err := s.store.FindByID(ctx, table.String(), id)
	if err != nil {
		return nil, err
	}

	if table.BranchScoped() && identity.BranchBound() {
		if !scope.MatchesBranch(record.Fields["branch_id"], identity.BranchID) {
			return nil, fmt.Errorf("%w: table %s, record %s", apperrors.ErrScopeViolation, table, id)
		}
	}
	return record.Flatten(), nil
}

func (s *RecordService) Create(ctx context.Context, identity types.Identity, tableName string, fields map[string]interface{}) (map[string]interface{}, error) {
	table, err := tables.Parse(tableName)
	if err != nil {
		return nil, err
	}
	if err := validateRequired(table, fields); err != nil {
		return nil, err
	}

	payload := s.stamper.ForCreate(identity, fields, false)
	if err := s.scope.InjectBranch(identity, table, payload); err != nil {
		return nil, err
	}

	record, err := s.store.Create(ctx, table.String(), payload)
	if err != nil {
		return nil, err
	}

	s.trail.Record(audit.Entry{
		ActorID:  identity.UserID,
		Action:   audit.ActionRecordCreated,
		Resource: table.String() + "/" + record.ID,
		Method:   "POST",
	})
	return record.Flatten(), nil
}

func (s *RecordService) Update(ctx context.Context, identity types.Identity, tableName, id string, fields map[string]interface{}) (map[string]interface{}, error) {
	table, err := tables.Parse(tableName)
	if err != nil {
		return nil, err
	}
	if err := s.scope.CheckWrite(identity, table, fields); err != nil {
		return nil, err
	}

	payload := s.stamper.ForUpdate(identity, fields)
	record, err := s.store.Update(ctx, table.String(), id, payload)
	if err != nil {
		return nil, err
	}

	s.trail.Record(audit.Entry{
		ActorID:  identity.UserID,
		Action:   audit.ActionRecordUpdated,
		Resource: table.String() + "/" + id,
		Method:   "PUT",
	})
	return record.Flatten(), nil
}

func (s *RecordService) Delete(ctx context.Context, identity types.Identity, tableName, id string) error {
	table, err := tables.Parse(tableName)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, table.String(), id); err != nil {
		return err
	}

	s.trail.Record(audit.Entry{
		ActorID:  identity.UserID,
		Action:   audit.ActionRecordDeleted,
		Resource: table.String() + "/" + id,
		Method:   "DELETE",
	})
	return nil
}

// validateRequired rejects creates missing a table's required fields before
// any store call.
func validateRequired(table tables.Table, fields map[string]interface{}) error {
	for _, key := range table.RequiredFields() {
		value, ok := fields[key]
		if !ok || value == nil || value == "" {
			return fmt.Errorf("%w: %s requires field %q", apperrors.ErrValidationFailed, table, key)
		}
	}
	return nil
}
