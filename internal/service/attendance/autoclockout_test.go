package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
)

func TestCloseTimeUsesScheduledEnd(t *testing.T) {
	j := &AutoClockOutJob{}
	end := "18:00"
	sched := &schedule.Schedule{EndTime: &end, Status: schedule.StatusScheduled}
	rec := attendance.ClockRecord{
		WorkDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		ClockIn1: clockAt(9, 0),
	}

	at, err := j.closeTime(rec, sched, company.RegimeMimix)
	require.NoError(t, err)
	assert.Equal(t, 18, at.Hour())
	assert.Equal(t, 10, at.Day())
}

func TestCloseTimeFallsBackToStandardDay(t *testing.T) {
	j := &AutoClockOutJob{}
	rec := attendance.ClockRecord{
		WorkDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		ClockIn1: clockAt(9, 0),
	}

	// No schedule: clock_in_1 plus the regime's standard shift.
	at, err := j.closeTime(rec, nil, company.RegimeMimix)
	require.NoError(t, err)
	assert.Equal(t, clockAt(17, 30).Unix(), at.Unix())

	// An off-day schedule is treated the same as none.
	off := &schedule.Schedule{Status: schedule.StatusOff}
	at, err = j.closeTime(rec, off, company.RegimeAAAlive)
	require.NoError(t, err)
	assert.Equal(t, clockAt(18, 0).Unix(), at.Unix())
}
