package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bsn-backend/internal/audit"
	"bsn-backend/internal/dto"
	"bsn-backend/internal/scope"
	"bsn-backend/pkg/apperrors"
)

func newBulkService(fs *fakeRecordStore) *BulkService {
	clock := func() time.Time { return time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC) }
	trail := audit.NewTrail(newFakeStore(), nil, zap.NewNop())
	return NewBulkService(fs, scope.New(), audit.NewStamperWithClock(clock), trail, zap.NewNop())
}

func rawItems(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item))
	}
	return out
}

func TestBulkCreateAllValid(t *testing.T) {
	fs := newFakeStore()
	svc := newBulkService(fs)

	req := dto.BulkRequestDTO{
		Operation: "create",
		Records: rawItems(
			`{"total_amount": 100}`,
			`{"total_amount": 200}`,
			`{"total_amount": 300}`,
		),
	}
	result, err := svc.Run(context.Background(), manager, "sales", req)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 3, result.SuccessCount)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Results, 3)
	for i, item := range result.Results {
		require.NotNil(t, item, "result %d", i)
		assert.Equal(t, "b1", fs.created[i].Fields["branch_id"])
	}
}

func TestBulkCreatePartialFailure(t *testing.T) {
	fs := newFakeStore()
	svc := newBulkService(fs)

	req := dto.BulkRequestDTO{
		Operation: "create",
		Records: rawItems(
			`{"full_name": "A", "email": "a@x.com", "role": "sales"}`,
			`{"full_name": "B"}`,
			`{"full_name": "C", "email": "c@x.com", "role": "hr"}`,
		),
	}
	result, err := svc.Run(context.Background(), boss, "employees", req)
	require.NoError(t, err, "partial failure is a processed request, not an error")

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)

	assert.NotNil(t, result.Results[0])
	assert.Nil(t, result.Results[1], "failed position stays nil, order preserved")
	assert.NotNil(t, result.Results[2])
}

func TestBulkCreateSystemImportKeepsStamps(t *testing.T) {
	fs := newFakeStore()
	svc := newBulkService(fs)

	req := dto.BulkRequestDTO{
		Operation:    "create",
		SystemImport: true,
		Records:      rawItems(`{"total_amount": 5, "created_at": "2020-01-01T00:00:00Z"}`),
	}
	_, err := svc.Run(context.Background(), boss, "sales", req)
	require.NoError(t, err)
	require.Len(t, fs.created, 1)
	assert.Equal(t, "2020-01-01T00:00:00Z", fs.created[0].Fields["created_at"])
}

func TestBulkUpdateRequiresIDPairs(t *testing.T) {
	fs := newFakeStore()
	svc := newBulkService(fs)

	req := dto.BulkRequestDTO{
		Operation: "update",
		Records: rawItems(
			`{"id": "rec1", "data": {"status": "paid"}}`,
			`{"data": {"status": "paid"}}`,
		),
	}
	result, err := svc.Run(context.Background(), boss, "sales", req)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
	require.Len(t, fs.updated, 1)
	assert.Equal(t, "paid", fs.updated[0].Fields["status"])
	assert.Equal(t, "u2", fs.updated[0].Fields["updated_by"])
}

func TestBulkDeleteMissingRecord(t *testing.T) {
	fs := newFakeStore()
	fs.failOn["id2"] = apperrors.ErrNotFound
	svc := newBulkService(fs)

	req := dto.BulkRequestDTO{
		Operation: "delete",
		Records:   rawItems(`"id1"`, `"id2"`, `"id3"`),
	}
	result, err := svc.Run(context.Background(), boss, "sales", req)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "id2", result.Errors[0].ID)
	assert.Equal(t, []string{"id1", "id3"}, fs.deleted)
}

func TestBulkUnknownOperationRejected(t *testing.T) {
	fs := newFakeStore()
	svc := newBulkService(fs)

	req := dto.BulkRequestDTO{Operation: "upsert", Records: rawItems(`{}`)}
	_, err := svc.Run(context.Background(), boss, "sales", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Equal(t, 0, fs.callCount())
}

func TestBulkInvalidTableBeforeStoreCall(t *testing.T) {
	fs := newFakeStore()
	svc := newBulkService(fs)

	req := dto.BulkRequestDTO{Operation: "create", Records: rawItems(`{}`)}
	_, err := svc.Run(context.Background(), boss, "nope", req)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTable))
	assert.Equal(t, 0, fs.callCount())
}
