package attendance

import (
	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
)

// NoShiftStart marks the absence of a scheduled start time.
const NoShiftStart = -1

// Mimix break allowance: breaks up to an hour are paid.
const breakAllowanceMinutes = 60

// OT below an hour is discarded; above, paid in half-hour blocks.
const (
	otMinimumMinutes   = 60
	otIncrementMinutes = 30
)

// Totals are the derived per-day numbers written back to a clock record.
type Totals struct {
	WorkMinutes  int
	BreakMinutes int
	OTMinutes    int
}

// ComputeTotals derives work, break and overtime minutes from the clock
// events on a record. shiftStartMinute is the scheduled start as a minute of
// day, or NoShiftStart when no schedule applies. Overnight shifts roll the
// end event forward by a day when it reads earlier than the start.
func ComputeTotals(regime string, rec attendance.ClockRecord, shiftStartMinute int) Totals {
	if regime == company.RegimeAAAlive {
		return computeAAAlive(rec)
	}
	return computeMimix(rec, shiftStartMinute)
}

// computeMimix spans clock_in_1 to the last clock-out. An early clock-in is
// clamped to the scheduled start; only the part of the break beyond the
// allowance is deducted.
func computeMimix(rec attendance.ClockRecord, shiftStartMinute int) Totals {
	lastOut := rec.LastClockOut()
	if rec.ClockIn1 == nil || lastOut == nil {
		return Totals{}
	}

	start := dateutil.MinuteOfDay(*rec.ClockIn1)
	if shiftStartMinute != NoShiftStart && start < shiftStartMinute {
		start = shiftStartMinute
	}

	work := dateutil.MinutesBetween(start, dateutil.MinuteOfDay(*lastOut))

	breakMins := 0
	if rec.ClockOut1 != nil && rec.ClockIn2 != nil {
		breakMins = dateutil.MinutesBetween(
			dateutil.MinuteOfDay(*rec.ClockOut1),
			dateutil.MinuteOfDay(*rec.ClockIn2),
		)
	}
	if breakMins > breakAllowanceMinutes {
		work -= breakMins - breakAllowanceMinutes
	}
	if work < 0 {
		work = 0
	}

	return Totals{
		WorkMinutes:  work,
		BreakMinutes: breakMins,
		OTMinutes:    mimixOT(work),
	}
}

// mimixOT applies the minimum-then-floor rule against the standard shift.
func mimixOT(workMinutes int) int {
	ot := workMinutes - company.StandardWorkMinutes(company.RegimeMimix)
	if ot < otMinimumMinutes {
		return 0
	}
	return ot - ot%otIncrementMinutes
}

// computeAAAlive sums the two sessions directly; the break is reported but
// never deducted, and overtime is paid to the minute.
func computeAAAlive(rec attendance.ClockRecord) Totals {
	work := 0
	if rec.ClockIn1 != nil && rec.ClockOut1 != nil {
		work += dateutil.MinutesBetween(
			dateutil.MinuteOfDay(*rec.ClockIn1),
			dateutil.MinuteOfDay(*rec.ClockOut1),
		)
	}
	if rec.ClockIn2 != nil && rec.ClockOut2 != nil {
		work += dateutil.MinutesBetween(
			dateutil.MinuteOfDay(*rec.ClockIn2),
			dateutil.MinuteOfDay(*rec.ClockOut2),
		)
	}

	breakMins := 0
	if rec.ClockOut1 != nil && rec.ClockIn2 != nil {
		breakMins = dateutil.MinutesBetween(
			dateutil.MinuteOfDay(*rec.ClockOut1),
			dateutil.MinuteOfDay(*rec.ClockIn2),
		)
	}

	ot := work - company.StandardWorkMinutes(company.RegimeAAAlive)
	if ot < 0 {
		ot = 0
	}

	return Totals{WorkMinutes: work, BreakMinutes: breakMins, OTMinutes: ot}
}
