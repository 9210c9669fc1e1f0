package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
)

func TestTallyShifts(t *testing.T) {
	isOff := true
	shifts := []schedule.Schedule{
		{EmployeeID: 1, Status: schedule.StatusScheduled},
		{EmployeeID: 1, Status: schedule.StatusScheduled, IsPublicHoliday: true},
		// Rows that predate the status column count like scheduled ones.
		{EmployeeID: 2, Status: ""},
		{EmployeeID: 2, Status: schedule.StatusOff},
		{EmployeeID: 3, Status: schedule.StatusScheduled, TemplateIsOff: &isOff},
	}

	tallies, total := tallyShifts(shifts)

	// One normal + one public holiday at double weight + one legacy normal.
	assert.Equal(t, 4, total)

	require.Contains(t, tallies, int64(1))
	assert.Equal(t, 1, tallies[1].normal)
	assert.Equal(t, 1, tallies[1].ph)

	require.Contains(t, tallies, int64(2))
	assert.Equal(t, 1, tallies[2].normal)
	assert.Equal(t, 0, tallies[2].ph)

	assert.NotContains(t, tallies, int64(3))
}

func TestTallyShiftsEmpty(t *testing.T) {
	tallies, total := tallyShifts(nil)
	assert.Empty(t, tallies)
	assert.Zero(t, total)
}
