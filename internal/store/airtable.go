package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/config"
)

// AirtableClient implements RecordStore against the remote key-table HTTP API.
// Every call is a fresh round-trip: no cache, no retry. Read-after-write
// consistency is whatever the store itself offers.
type AirtableClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	baseID     string
	logger     *zap.Logger
}

func NewAirtableClient(cfg config.StoreConfig, logger *zap.Logger) *AirtableClient {
	return &AirtableClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		baseID:     cfg.BaseID,
		logger:     logger.Named("record_store"),
	}
}

type airtableRecord struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

type recordPage struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset,omitempty"`
}

type deleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (c *AirtableClient) tableURL(table string) string {
	return fmt.Sprintf("%s/v0/%s/%s", c.endpoint, c.baseID, url.PathEscape(table))
}

func (c *AirtableClient) Create(ctx context.Context, table string, fields map[string]interface{}) (*Record, error) {
	payload := map[string]interface{}{
		"records": []map[string]interface{}{{"fields": fields}},
	}
	var page recordPage
	if err := c.do(ctx, http.MethodPost, c.tableURL(table), payload, &page, "create", table); err != nil {
		return nil, err
	}
	if len(page.Records) == 0 {
		return nil, fmt.Errorf("create %s: %w: empty response", table, apperrors.ErrBackendRejected)
	}
	return toRecord(table, page.Records[0]), nil
}

func (c *AirtableClient) Find(ctx context.Context, table string, filter string, sort []Sort) ([]Record, error) {
	var records []Record
	offset := ""

	// The store pages its list responses; walk the offset cursor to the end.
	for {
		params := url.Values{}
		if filter != "" {
			params.Set("filterByFormula", filter)
		}
		for i, s := range sort {
			params.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
			params.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
		}
		if offset != "" {
			params.Set("offset", offset)
		}

		reqURL := c.tableURL(table)
		if encoded := params.Encode(); encoded != "" {
			reqURL += "?" + encoded
		}

		var page recordPage
		if err := c.do(ctx, http.MethodGet, reqURL, nil, &page, "find", table); err != nil {
			return nil, err
		}
		for _, r := range page.Records {
			records = append(records, *toRecord(table, r))
		}
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *AirtableClient) Update(ctx context.Context, table string, id string, fields map[string]interface{}) (*Record, error) {
	payload := map[string]interface{}{
		"records": []map[string]interface{}{{"id": id, "fields": fields}},
	}
	var page recordPage
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table), payload, &page, "update", table); err != nil {
		return nil, err
	}
	if len(page.Records) == 0 {
		return nil, fmt.Errorf("update %s: %w: empty response", table, apperrors.ErrBackendRejected)
	}
	return toRecord(table, page.Records[0]), nil
}

func (c *AirtableClient) Delete(ctx context.Context, table string, id string) error {
	var resp deleteResponse
	if err := c.do(ctx, http.MethodDelete, c.tableURL(table)+"/"+url.PathEscape(id), nil, &resp, "delete", table); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("delete %s %s: %w", table, id, apperrors.ErrBackendRejected)
	}
	return nil
}

func (c *AirtableClient) FindByID(ctx context.Context, table string, id string) (*Record, error) {
	var rec airtableRecord
	if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &rec, "findById", table); err != nil {
		return nil, err
	}
	return toRecord(table, rec), nil
}

// do executes one request and decodes the response, classifying failures as
// unavailable (transport, timeout, 429, 5xx) or rejected (any other non-2xx,
// keeping the store's own message).
func (c *AirtableClient) do(ctx context.Context, method, reqURL string, payload, out interface{}, op, table string) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s %s: encode payload: %w", op, table, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", op, table, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", op, table, apperrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("store call",
		zap.String("op", op),
		zap.String("table", table),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w: read response: %v", op, table, apperrors.ErrBackendUnavailable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return fmt.Errorf("%s %s: %w: status %s", op, table, apperrors.ErrBackendUnavailable, resp.Status)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", op, table, apperrors.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %w: %s", op, table, apperrors.ErrBackendRejected, storeErrorMessage(raw, resp.Status))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s %s: %w: decode response: %v", op, table, apperrors.ErrBackendRejected, err)
		}
	}
	return nil
}

// storeErrorMessage digs the human-readable message out of the store's error
// envelope; the "error" key is an object in most responses and a bare string
// in a few legacy ones.
func storeErrorMessage(raw []byte, fallback string) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return fallback
	}

	var obj struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}

	var s string
	if err := json.Unmarshal(envelope.Error, &s); err == nil && s != "" {
		return s
	}
	return fallback
}

func toRecord(table string, r airtableRecord) *Record {
	fields := r.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return &Record{ID: r.ID, Table: table, Fields: fields}
}
