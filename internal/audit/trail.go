package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bsn-backend/internal/integrations"
	"bsn-backend/internal/store"
	"bsn-backend/internal/tables"
)

// Event action names recorded in the trail.
const (
	ActionRecordCreated      = "RECORD_CREATED"
	ActionRecordUpdated      = "RECORD_UPDATED"
	ActionRecordDeleted      = "RECORD_DELETED"
	ActionBulkOperation      = "BULK_OPERATION"
	ActionUnauthorizedAccess = "UNAUTHORIZED_ACCESS"
	ActionLoginFailed        = "LOGIN_FAILED"
	ActionSuspiciousActivity = "SUSPICIOUS_ACTIVITY"
)

var severityMap = map[string]string{
	ActionLoginFailed:        "medium",
	ActionUnauthorizedAccess: "high",
	ActionSuspiciousActivity: "high",
	"CSRF_VIOLATION":         "high",
	"RATE_LIMIT_EXCEEDED":    "medium",
}

// SeverityFor defaults to low for anything outside the map.
func SeverityFor(action string) string {
	if s, ok := severityMap[action]; ok {
		return s
	}
	return "low"
}

// Entry is one structured audit event.
type Entry struct {
	ActorID  string
	Action   string
	Resource string
	Method   string
	Details  map[string]interface{}
}

// Trail appends audit events to the audit_logs table. It is a side-observer:
// writes happen on their own goroutine with their own deadline, and a failed
// write is logged and dropped — it must never fail the mutating request it
// observed.
type Trail struct {
	store     store.RecordStore
	messenger integrations.Messenger
	logger    *zap.Logger
}

func NewTrail(recordStore store.RecordStore, messenger integrations.Messenger, logger *zap.Logger) *Trail {
	return &Trail{
		store:     recordStore,
		messenger: messenger,
		logger:    logger.Named("audit_trail"),
	}
}

// Record emits the entry asynchronously.
func (t *Trail) Record(entry Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		t.Write(ctx, entry)
	}()
}

// Write emits the entry on the caller's goroutine. Exposed for tests and for
// the rare caller that wants the write to complete before returning.
func (t *Trail) Write(ctx context.Context, entry Entry) {
	severity := SeverityFor(entry.Action)

	fields := map[string]interface{}{
		"event_id":  uuid.NewString(),
		"user_id":   entry.ActorID,
		"action":    entry.Action,
		"resource":  entry.Resource,
		"method":    entry.Method,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"severity":  severity,
	}
	if entry.ActorID == "" {
		fields["user_id"] = "anonymous"
	}
	if len(entry.Details) > 0 {
		if raw, err := json.Marshal(entry.Details); err == nil {
			fields["details"] = string(raw)
		}
	}

	if _, err := t.store.Create(ctx, tables.AuditLogs.String(), fields); err != nil {
		t.logger.Error("failed to write audit event",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err),
		)
		return
	}

	if severity == "high" && t.messenger != nil {
		if err := t.messenger.SendAlert(ctx, entry.Action, entry.Resource); err != nil {
			t.logger.Warn("failed to send audit alert", zap.Error(err))
		}
	}
}
