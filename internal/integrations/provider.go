package integrations

import (
	"context"
	"time"
)

// The collaborators below live outside this repo (accounting sync, outbound
// messaging). The core only knows the contracts; anything richer belongs to
// the implementations.

// Session is the explicit accounting-sync authorization state. It is passed
// around and persisted as a value — never a package-level variable — so expiry
// and refresh are visible to the caller that owns it.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TenantID     string    `json:"tenant_id,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session needs a refresh before use. The one
// minute skew keeps a token from dying mid-request.
func (s Session) Expired() bool {
	return s.AccessToken == "" || time.Now().After(s.ExpiresAt.Add(-time.Minute))
}

// AccountingProvider syncs financial documents to an external ledger.
type AccountingProvider interface {
	Name() string
	Refresh(ctx context.Context, session Session) (Session, error)
	SyncSale(ctx context.Context, session Session, sale map[string]interface{}) error
	SyncExpense(ctx context.Context, session Session, expense map[string]interface{}) error
}

// Messenger delivers outbound notifications (payslips, operational alerts).
type Messenger interface {
	Name() string
	SendAlert(ctx context.Context, subject, body string) error
}
