package scope

import (
	"fmt"

	"bsn-backend/internal/store"
	"bsn-backend/internal/tables"
	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/types"
)

// Policy decides what filter must be conjoined onto reads and what branch_id a
// write payload must carry. It is pure; skipping it on a branch-scoped table
// is a security defect, not a performance one.
type Policy struct{}

func New() Policy { return Policy{} }

// ScopeFilter returns the effective filter for a read. Non-exempt callers on
// branch-scoped tables get their branch clause AND-ed onto whatever they asked
// for; everyone else gets the requested filter unchanged.
func (Policy) ScopeFilter(identity types.Identity, table tables.Table, requested string) string {
	if !table.BranchScoped() || !identity.BranchBound() {
		return requested
	}
	return store.And(requested, store.EqField("branch_id", identity.BranchID))
}

// InjectBranch pins a create payload to the caller's branch. A branch-bound
// caller addressing another branch is a scope violation, never a silent fixup.
func (p Policy) InjectBranch(identity types.Identity, table tables.Table, fields map[string]interface{}) error {
	if !table.BranchScoped() || !identity.BranchBound() {
		return nil
	}
	if err := p.CheckWrite(identity, table, fields); err != nil {
		return err
	}
	if _, ok := fields["branch_id"]; !ok {
		fields["branch_id"] = identity.BranchID
	}
	return nil
}

// CheckWrite rejects payloads whose branch_id points outside the caller's
// branch. Payloads without a branch_id pass; InjectBranch fills it for creates.
func (Policy) CheckWrite(identity types.Identity, table tables.Table, fields map[string]interface{}) error {
	if !table.BranchScoped() || !identity.BranchBound() {
		return nil
	}
	supplied, ok := fields["branch_id"]
	if !ok || supplied == nil {
		return nil
	}
	if !MatchesBranch(supplied, identity.BranchID) {
		return fmt.Errorf("%w: table %s, branch %v", apperrors.ErrScopeViolation, table, supplied)
	}
	return nil
}

// MatchesBranch compares a branch_id field value against a branch. The store
// serializes link fields as lists of ids, plain fields as strings; both occur
// in the wild.
func MatchesBranch(value interface{}, branchID string) bool {
	switch v := value.(type) {
	case string:
		return v == branchID
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == branchID {
				return true
			}
		}
		return false
	case []string:
		for _, s := range v {
			if s == branchID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
