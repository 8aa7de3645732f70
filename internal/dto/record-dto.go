package dto

import "encoding/json"

// BulkRequestDTO is the body of POST /api/data/:table/bulk. Records are kept
// raw because their shape depends on the operation: field maps for create,
// {id, data} pairs for update, bare id strings for delete.
type BulkRequestDTO struct {
	Operation string            `json:"operation" validate:"required,oneof=create update delete"`
	Records   []json.RawMessage `json:"records" validate:"required,min=1"`
	// SystemImport lets a bulk create keep caller-supplied audit stamps
	// (historical imports). Ordinary requests leave it unset.
	SystemImport bool `json:"system_import,omitempty"`
}

// BulkUpdateItemDTO is one element of a bulk update payload.
type BulkUpdateItemDTO struct {
	ID   string                 `json:"id"`
	Data map[string]interface{} `json:"data"`
}

// BulkItemErrorDTO references one failed item by its input position and, where
// known, the record id it addressed.
type BulkItemErrorDTO struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// BulkResultDTO is always returned with HTTP 200; partial failure is data, not
// an error status. Results keeps input order, with nil at failed positions.
type BulkResultDTO struct {
	Results      []map[string]interface{} `json:"results"`
	SuccessCount int                      `json:"successCount"`
	TotalCount   int                      `json:"totalCount"`
	Errors       []BulkItemErrorDTO       `json:"errors"`
}
