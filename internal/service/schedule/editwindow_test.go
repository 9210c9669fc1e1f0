package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

func TestCanEditDateSupervisorWindow(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	// Supervisors may only edit from today+3 onward.
	assert.False(t, CanEditDate(session.RoleSupervisor, day(0), today))
	assert.False(t, CanEditDate(session.RoleSupervisor, day(1), today))
	assert.False(t, CanEditDate(session.RoleSupervisor, day(2), today))
	assert.True(t, CanEditDate(session.RoleSupervisor, day(3), today))
	assert.True(t, CanEditDate(session.RoleSupervisor, day(30), today))
	assert.False(t, CanEditDate(session.RoleSupervisor, day(-1), today))
}

func TestCanEditDateManagerAndAdmin(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -30)

	assert.True(t, CanEditDate(session.RoleManager, past, today))
	assert.True(t, CanEditDate(session.RoleAdmin, past, today))
	assert.True(t, CanEditDate(session.RoleManager, today, today))
}

func TestCanEditDateCrew(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.False(t, CanEditDate(session.RoleCrew, today.AddDate(0, 0, 10), today))
}

func TestEarliestEditable(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), EarliestEditable(session.RoleSupervisor, today))
	assert.True(t, EarliestEditable(session.RoleManager, today).IsZero())
}
