package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bsn-backend/internal/store"
)

type fakeStore struct {
	created []store.Record
	fail    bool
}

func (f *fakeStore) Create(_ context.Context, table string, fields map[string]interface{}) (*store.Record, error) {
	if f.fail {
		return nil, errors.New("store down")
	}
	rec := store.Record{ID: "recA", Table: table, Fields: fields}
	f.created = append(f.created, rec)
	return &rec, nil
}

func (f *fakeStore) Find(context.Context, string, string, []store.Sort) ([]store.Record, error) {
	return nil, nil
}

func (f *fakeStore) Update(context.Context, string, string, map[string]interface{}) (*store.Record, error) {
	return nil, nil
}

func (f *fakeStore) Delete(context.Context, string, string) error { return nil }

func (f *fakeStore) FindByID(context.Context, string, string) (*store.Record, error) {
	return nil, nil
}

type fakeMessenger struct {
	alerts []string
}

func (m *fakeMessenger) Name() string { return "fake" }

func (m *fakeMessenger) SendAlert(_ context.Context, subject, _ string) error {
	m.alerts = append(m.alerts, subject)
	return nil
}

func TestWriteCreatesAuditRecord(t *testing.T) {
	fs := &fakeStore{}
	trail := NewTrail(fs, nil, zap.NewNop())

	trail.Write(context.Background(), Entry{
		ActorID:  "u1",
		Action:   ActionRecordCreated,
		Resource: "sales/rec9",
		Method:   "POST",
		Details:  map[string]interface{}{"foo": "bar"},
	})

	require.Len(t, fs.created, 1)
	fields := fs.created[0].Fields
	assert.Equal(t, "audit_logs", fs.created[0].Table)
	assert.Equal(t, "u1", fields["user_id"])
	assert.Equal(t, ActionRecordCreated, fields["action"])
	assert.Equal(t, "low", fields["severity"])
	assert.NotEmpty(t, fields["event_id"])
	assert.JSONEq(t, `{"foo":"bar"}`, fields["details"].(string))
}

func TestWriteAnonymousActor(t *testing.T) {
	fs := &fakeStore{}
	trail := NewTrail(fs, nil, zap.NewNop())

	trail.Write(context.Background(), Entry{Action: ActionLoginFailed})

	require.Len(t, fs.created, 1)
	assert.Equal(t, "anonymous", fs.created[0].Fields["user_id"])
	assert.Equal(t, "medium", fs.created[0].Fields["severity"])
}

func TestHighSeverityTriggersAlert(t *testing.T) {
	fs := &fakeStore{}
	m := &fakeMessenger{}
	trail := NewTrail(fs, m, zap.NewNop())

	trail.Write(context.Background(), Entry{
		ActorID:  "u1",
		Action:   ActionUnauthorizedAccess,
		Resource: "/api/data/payroll",
	})

	require.Len(t, m.alerts, 1)
	assert.Equal(t, ActionUnauthorizedAccess, m.alerts[0])
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	fs := &fakeStore{fail: true}
	m := &fakeMessenger{}
	trail := NewTrail(fs, m, zap.NewNop())

	// Must not panic and must not alert on a failed write.
	trail.Write(context.Background(), Entry{Action: ActionUnauthorizedAccess})
	assert.Empty(t, m.alerts)
}

func TestSeverityDefaultsLow(t *testing.T) {
	assert.Equal(t, "low", SeverityFor("SOMETHING_NEW"))
	assert.Equal(t, "high", SeverityFor(ActionSuspiciousActivity))
}
