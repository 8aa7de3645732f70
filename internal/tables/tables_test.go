package tables

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsn-backend/pkg/apperrors"
)

func TestParseKnownTables(t *testing.T) {
	for _, table := range All() {
		parsed, err := Parse(table.String())
		require.NoError(t, err, "table %s should parse", table)
		assert.Equal(t, table, parsed)
	}
}

func TestParseUnknownTable(t *testing.T) {
	for _, name := range []string{"users", "employees; DROP", "", "Employees"} {
		_, err := Parse(name)
		require.Error(t, err, "name %q must be rejected", name)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidTable))
	}
}

func TestBranchScoping(t *testing.T) {
	assert.True(t, Employees.BranchScoped())
	assert.True(t, Sales.BranchScoped())
	assert.True(t, Payroll.BranchScoped())

	assert.False(t, Branches.BranchScoped())
	assert.False(t, Vehicles.BranchScoped())
	assert.False(t, AuditLogs.BranchScoped())
}

func TestRequiredFields(t *testing.T) {
	assert.ElementsMatch(t, []string{"full_name", "email", "role"}, Employees.RequiredFields())
	assert.ElementsMatch(t, []string{"plate_number"}, Vehicles.RequiredFields())
	assert.Empty(t, Sales.RequiredFields())
}
