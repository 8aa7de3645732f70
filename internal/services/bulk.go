package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"bsn-backend/internal/audit"
	"bsn-backend/internal/dto"
	"bsn-backend/internal/scope"
	"bsn-backend/internal/store"
	"bsn-backend/internal/tables"
	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/types"
)

// BulkService applies one operation to a list of payloads. Items run
// sequentially and independently — the store offers no multi-record
// transactions, and its rate limits punish bursts — so a failure on item i
// never aborts item i+1. Results and errors keep input order.
//
// Deletes are not re-scoped per item; the route-level role gate (boss/admin)
// is the authorization boundary for bulk requests.
type BulkService struct {
	store   store.RecordStore
	scope   scope.Policy
	stamper *audit.Stamper
	trail   *audit.Trail
	logger  *zap.Logger
}

func NewBulkService(recordStore store.RecordStore, policy scope.Policy, stamper *audit.Stamper, trail *audit.Trail, logger *zap.Logger) *BulkService {
	return &BulkService{
		store:   recordStore,
		scope:   policy,
		stamper: stamper,
		trail:   trail,
		logger:  logger,
	}
}

func (s *BulkService) Run(ctx context.Context, identity types.Identity, tableName string, req dto.BulkRequestDTO) (*dto.BulkResultDTO, error) {
	table, err := tables.Parse(tableName)
	if err != nil {
		return nil, err
	}

	result := &dto.BulkResultDTO{
		Results:    make([]map[string]interface{}, len(req.Records)),
		TotalCount: len(req.Records),
		Errors:     []dto.BulkItemErrorDTO{},
	}

	switch req.Operation {
	case "create":
		s.runCreates(ctx, identity, table, req, result)
	case "update":
		s.runUpdates(ctx, identity, table, req, result)
	case "delete":
		s.runDeletes(ctx, table, req, result)
	default:
		// The DTO validator catches this on the HTTP path; re-checked here so
		// no programmatic caller can reach the store with a bogus operation.
		return nil, fmt.Errorf("%w: unknown bulk operation %q", apperrors.ErrValidationFailed, req.Operation)
	}

	result.SuccessCount = result.TotalCount - len(result.Errors)

	s.trail.Record(audit.Entry{
		ActorID:  identity.UserID,
		Action:   audit.ActionBulkOperation,
		Resource: table.String(),
		Method:   "POST",
		Details: map[string]interface{}{
			"operation":    req.Operation,
			"totalCount":   result.TotalCount,
			"successCount": result.SuccessCount,
		},
	})
	return result, nil
}

func (s *BulkService) runCreates(ctx context.Context, identity types.Identity, table tables.Table, req dto.BulkRequestDTO, result *dto.BulkResultDTO) {
	for i, raw := range req.Records {
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, Message: "item is not an object: " + err.Error()})
			continue
		}
		if err := validateRequired(table, fields); err != nil {
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, Message: err.Error()})
			continue
		}

		payload := s.stamper.ForCreate(identity, fields, req.SystemImport)
		if err := s.scope.InjectBranch(identity, table, payload); err != nil {
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, Message: err.Error()})
			continue
		}

		record, err := s.store.Create(ctx, table.String(), payload)
		if err != nil {
			s.logger.Warn("bulk create item failed", zap.String("table", table.String()), zap.Int("index", i), zap.Error(err))
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, Message: err.Error()})
			continue
		}
		result.Results[i] = record.Flatten()
	}
}

func (s *BulkService) runUpdates(ctx context.Context, identity types.Identity, table tables.Table, req dto.BulkRequestDTO, result *dto.BulkResultDTO) {
	for i, raw := range req.Records {
		var item dto.BulkUpdateItemDTO
		if err := json.Unmarshal(raw, &item); err != nil || item.ID == "" {
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, Message: "item must be an {id, data} pair"})
			continue
		}

		payload := s.stamper.ForUpdate(identity, item.Data)
		record, err := s.store.Update(ctx, table.String(), item.ID, payload)
		if err != nil {
			s.logger.Warn("bulk update item failed", zap.String("table", table.String()), zap.String("id", item.ID), zap.Error(err))
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, ID: item.ID, Message: err.Error()})
			continue
		}
		result.Results[i] = record.Flatten()
	}
}

func (s *BulkService) runDeletes(ctx context.Context, table tables.Table, req dto.BulkRequestDTO, result *dto.BulkResultDTO) {
	for i, raw := range req.Records {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil || id == "" {
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, Message: "item must be a record id string"})
			continue
		}

		if err := s.store.Delete(ctx, table.String(), id); err != nil {
			s.logger.Warn("bulk delete item failed", zap.String("table", table.String()), zap.String("id", id), zap.Error(err))
			result.Errors = append(result.Errors, dto.BulkItemErrorDTO{Index: i, ID: id, Message: err.Error()})
			continue
		}
		result.Results[i] = map[string]interface{}{"id": id, "deleted": true}
	}
}
