package audit

import (
	"time"

	"bsn-backend/pkg/types"
)

// Stamper attaches audit metadata to mutating payloads. Pure field
// augmentation; the input map is never modified.
type Stamper struct {
	now func() time.Time
}

func NewStamper() *Stamper {
	return &Stamper{now: time.Now}
}

// NewStamperWithClock pins the clock, for tests.
func NewStamperWithClock(now func() time.Time) *Stamper {
	return &Stamper{now: now}
}

func (s *Stamper) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ForCreate sets created_at, updated_at and created_by. Caller-supplied stamps
// are overwritten unless systemImport is set — bulk imports of historical data
// are the one case allowed to carry their own timestamps.
func (s *Stamper) ForCreate(identity types.Identity, fields map[string]interface{}, systemImport bool) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		out[k] = v
	}
	ts := s.timestamp()
	if systemImport {
		setIfAbsent(out, "created_at", ts)
		setIfAbsent(out, "updated_at", ts)
		setIfAbsent(out, "created_by", identity.UserID)
	} else {
		out["created_at"] = ts
		out["updated_at"] = ts
		out["created_by"] = identity.UserID
	}
	return out
}

// ForUpdate sets updated_at and updated_by, leaving every other key untouched.
// created_at/created_by are never written here.
func (s *Stamper) ForUpdate(identity types.Identity, fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out["updated_at"] = s.timestamp()
	out["updated_by"] = identity.UserID
	return out
}

func setIfAbsent(fields map[string]interface{}, key string, value interface{}) {
	if _, ok := fields[key]; !ok {
		fields[key] = value
	}
}
