package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
)

func clockAt(hour, minute int) *time.Time {
	t := time.Date(2025, 1, 10, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestComputeTotalsMimix(t *testing.T) {
	// Early clock-in clamped to 09:00; 50-minute break inside the allowance;
	// 80 raw OT minutes floored to 60.
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(8, 55),
		ClockOut1: clockAt(12, 30),
		ClockIn2:  clockAt(13, 20),
		ClockOut2: clockAt(18, 50),
	}

	totals := ComputeTotals(company.RegimeMimix, rec, 9*60)

	assert.Equal(t, 590, totals.WorkMinutes)
	assert.Equal(t, 50, totals.BreakMinutes)
	assert.Equal(t, 60, totals.OTMinutes)
}

func TestComputeTotalsMimixBreakBeyondAllowance(t *testing.T) {
	// 90-minute break: only the 30 minutes above the allowance are deducted.
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(9, 0),
		ClockOut1: clockAt(12, 0),
		ClockIn2:  clockAt(13, 30),
		ClockOut2: clockAt(18, 0),
	}

	totals := ComputeTotals(company.RegimeMimix, rec, 9*60)

	assert.Equal(t, 90, totals.BreakMinutes)
	assert.Equal(t, 510, totals.WorkMinutes)
	assert.Equal(t, 0, totals.OTMinutes)
}

func TestComputeTotalsMimixOTBelowMinimum(t *testing.T) {
	// 50 raw OT minutes fall under the one-hour minimum and are discarded.
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(9, 0),
		ClockOut1: clockAt(18, 20),
	}

	totals := ComputeTotals(company.RegimeMimix, rec, 9*60)

	assert.Equal(t, 560, totals.WorkMinutes)
	assert.Equal(t, 0, totals.OTMinutes)
}

func TestComputeTotalsMimixNoSchedule(t *testing.T) {
	// Without a schedule the actual clock-in counts, even before 09:00.
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(8, 0),
		ClockOut1: clockAt(17, 0),
	}

	totals := ComputeTotals(company.RegimeMimix, rec, NoShiftStart)

	assert.Equal(t, 540, totals.WorkMinutes)
}

func TestComputeTotalsMimixOvernight(t *testing.T) {
	// 22:00 to 06:00 rolls past midnight to 480 minutes.
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(22, 0),
		ClockOut1: clockAt(6, 0),
	}

	totals := ComputeTotals(company.RegimeMimix, rec, NoShiftStart)

	assert.Equal(t, 480, totals.WorkMinutes)
	assert.Equal(t, 0, totals.OTMinutes)
}

func TestComputeTotalsMimixIncomplete(t *testing.T) {
	rec := attendance.ClockRecord{ClockIn1: clockAt(9, 0)}

	totals := ComputeTotals(company.RegimeMimix, rec, 9*60)

	assert.Equal(t, Totals{}, totals)
}

func TestComputeTotalsAAAlive(t *testing.T) {
	// Two sessions summed directly; OT paid to the minute above 540.
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(8, 0),
		ClockOut1: clockAt(12, 0),
		ClockIn2:  clockAt(13, 0),
		ClockOut2: clockAt(19, 30),
	}

	totals := ComputeTotals(company.RegimeAAAlive, rec, NoShiftStart)

	assert.Equal(t, 630, totals.WorkMinutes)
	assert.Equal(t, 60, totals.BreakMinutes)
	assert.Equal(t, 90, totals.OTMinutes)
}

func TestComputeTotalsAAAliveSingleSession(t *testing.T) {
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(8, 0),
		ClockOut1: clockAt(16, 0),
	}

	totals := ComputeTotals(company.RegimeAAAlive, rec, NoShiftStart)

	assert.Equal(t, 480, totals.WorkMinutes)
	assert.Equal(t, 0, totals.BreakMinutes)
	assert.Equal(t, 0, totals.OTMinutes)
}

func TestComputeTotalsAAAliveBreakNotDeducted(t *testing.T) {
	// A two-hour break is reported but never deducted from work.
	rec := attendance.ClockRecord{
		ClockIn1:  clockAt(8, 0),
		ClockOut1: clockAt(12, 0),
		ClockIn2:  clockAt(14, 0),
		ClockOut2: clockAt(19, 0),
	}

	totals := ComputeTotals(company.RegimeAAAlive, rec, NoShiftStart)

	assert.Equal(t, 540, totals.WorkMinutes)
	assert.Equal(t, 120, totals.BreakMinutes)
}
