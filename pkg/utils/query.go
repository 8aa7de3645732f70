package utils

import (
	"encoding/json"
	"strconv"

	"bsn-backend/internal/store"
)

const MaxListLimit = 1000

// ParseSortParam decodes the `sort` query parameter, a JSON array of
// {field, direction} objects in the store's own sort shape. Malformed input
// falls back to no explicit sort; the service applies its default.
func ParseSortParam(raw string) []store.Sort {
	if raw == "" {
		return nil
	}
	var sort []store.Sort
	if err := json.Unmarshal([]byte(raw), &sort); err != nil {
		return nil
	}
	return sort
}

// ParseLimitParam returns 0 (no limit) for absent or invalid values.
func ParseLimitParam(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
