package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*AirtableClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewAirtableClient(config.StoreConfig{
		Endpoint: server.URL,
		APIKey:   "test-key",
		BaseID:   "appTest",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
	return client, server
}

func TestFindWalksPagination(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v0/appTest/sales", r.URL.Path)

		switch r.URL.Query().Get("offset") {
		case "":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{"id": "rec1", "fields": map[string]interface{}{"total_amount": 10}},
					{"id": "rec2", "fields": map[string]interface{}{"total_amount": 20}},
				},
				"offset": "cursor1",
			})
		case "cursor1":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{"id": "rec3", "fields": map[string]interface{}{"total_amount": 30}},
				},
			})
		default:
			t.Fatalf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	})

	records, err := client.Find(context.Background(), "sales", "", nil)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "rec3", records[2].ID)
}

func TestFindEncodesFilterAndSort(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "{branch_id} = 'b1'", q.Get("filterByFormula"))
		assert.Equal(t, "created_at", q.Get("sort[0][field]"))
		assert.Equal(t, "desc", q.Get("sort[0][direction]"))
		json.NewEncoder(w).Encode(map[string]interface{}{"records": []map[string]interface{}{}})
	})

	_, err := client.Find(context.Background(), "sales", "{branch_id} = 'b1'",
		[]Sort{{Field: "created_at", Direction: "desc"}})
	require.NoError(t, err)
}

func TestRateLimitIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Find(context.Background(), "sales", "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable))
}

func TestServerErrorIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Find(context.Background(), "sales", "", nil)
	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable))
}

func TestRejectionKeepsStoreMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"type": "INVALID_VALUE_FOR_COLUMN", "message": "field quantity must be a number"},
		})
	})

	_, err := client.Create(context.Background(), "stock", map[string]interface{}{"quantity": "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBackendRejected))
	assert.Contains(t, err.Error(), "field quantity must be a number")
}

func TestMissingRecordIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FindByID(context.Background(), "sales", "recMissing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCreateWrapsFieldsInRecordsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var payload struct {
			Records []struct {
				Fields map[string]interface{} `json:"fields"`
			} `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Records, 1)
		assert.Equal(t, "Widget", payload.Records[0].Fields["product_name"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"records": []map[string]interface{}{
				{"id": "recNew", "fields": payload.Records[0].Fields},
			},
		})
	})

	rec, err := client.Create(context.Background(), "stock", map[string]interface{}{"product_name": "Widget"})
	require.NoError(t, err)
	assert.Equal(t, "recNew", rec.ID)
	assert.Equal(t, "Widget", rec.Fields["product_name"])
}

func TestUpdateUsesPatchWithID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)

		var payload struct {
			Records []struct {
				ID     string                 `json:"id"`
				Fields map[string]interface{} `json:"fields"`
			} `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Records, 1)
		assert.Equal(t, "rec1", payload.Records[0].ID)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"records": []map[string]interface{}{
				{"id": "rec1", "fields": payload.Records[0].Fields},
			},
		})
	})

	rec, err := client.Update(context.Background(), "stock", "rec1", map[string]interface{}{"unit_price": 9.5})
	require.NoError(t, err)
	assert.Equal(t, "rec1", rec.ID)
}

func TestDeleteChecksDeletedFlag(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v0/appTest/stock/rec1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "rec1", "deleted": true})
	})

	require.NoError(t, client.Delete(context.Background(), "stock", "rec1"))
}

func TestDeleteRejectedWhenFlagMissing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "rec1", "deleted": false})
	})

	err := client.Delete(context.Background(), "stock", "rec1")
	assert.True(t, errors.Is(err, apperrors.ErrBackendRejected))
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Find(context.Background(), "sales", "", nil)
	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable))
}
