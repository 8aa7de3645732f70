package tables

import (
	"fmt"

	"bsn-backend/pkg/apperrors"
)

// Table is a closed identifier for a record-store table. Operations referencing
// anything outside the registry fail before a single store call is made; the
// store itself treats table names as arbitrary strings and would happily probe
// whatever it is handed.
type Table string

const (
	Branches           Table = "branches"
	Employees          Table = "employees"
	Stock              Table = "stock"
	StockMovements     Table = "stock_movements"
	Sales              Table = "sales"
	SaleItems          Table = "sale_items"
	Expenses           Table = "expenses"
	Vehicles           Table = "vehicles"
	Trips              Table = "trips"
	VehicleMaintenance Table = "vehicle_maintenance"
	Orders             Table = "orders"
	OrderItems         Table = "order_items"
	Payroll            Table = "payroll"
	AuditLogs          Table = "audit_logs"
	ERPSettings        Table = "erp_settings"
	Documents          Table = "documents"
)

// Spec describes how the access layer treats one table.
type Spec struct {
	// BranchScoped tables carry a branch_id field and are filtered by it for
	// non-exempt callers.
	BranchScoped bool
	// RequiredFields must be present and non-empty on create.
	RequiredFields []string
}

var registry = map[Table]Spec{
	Branches:           {},
	Employees:          {BranchScoped: true, RequiredFields: []string{"full_name", "email", "role"}},
	Stock:              {BranchScoped: true, RequiredFields: []string{"product_name", "quantity_available", "unit_price"}},
	StockMovements:     {BranchScoped: true},
	Sales:              {BranchScoped: true},
	SaleItems:          {},
	Expenses:           {BranchScoped: true},
	Vehicles:           {RequiredFields: []string{"plate_number"}},
	Trips:              {},
	VehicleMaintenance: {},
	Orders:             {BranchScoped: true},
	OrderItems:         {},
	Payroll:            {BranchScoped: true},
	AuditLogs:          {},
	ERPSettings:        {},
	Documents:          {},
}

// Parse resolves a runtime table name against the registry.
func Parse(name string) (Table, error) {
	t := Table(name)
	if _, ok := registry[t]; !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidTable, name)
	}
	return t, nil
}

func (t Table) String() string { return string(t) }

func (t Table) BranchScoped() bool {
	return registry[t].BranchScoped
}

func (t Table) RequiredFields() []string {
	return registry[t].RequiredFields
}

// All returns the registry's table set; ordering is unspecified.
func All() []Table {
	out := make([]Table, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	return out
}
