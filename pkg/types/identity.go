package types

// Role values mirror the employees.role field in the record store.
const (
	RoleAdmin     = "admin"
	RoleBoss      = "boss"
	RoleManager   = "manager"
	RoleHR        = "hr"
	RoleLogistics = "logistics"
	RoleSales     = "sales"
)

// Identity is the caller as asserted by the upstream auth collaborator. The
// core trusts it as-is; BranchID is empty only for cross-branch roles.
type Identity struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	BranchID string `json:"branchId,omitempty"`
}

// Exempt reports whether the caller may see records across all branches.
func (i Identity) Exempt() bool {
	return i.Role == RoleBoss || i.Role == RoleAdmin
}

// BranchBound reports whether reads and writes must be pinned to the caller's
// own branch.
func (i Identity) BranchBound() bool {
	return !i.Exempt() && i.BranchID != ""
}
