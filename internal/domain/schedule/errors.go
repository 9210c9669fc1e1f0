package schedule

import "errors"

var (
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrTemplateNotFound     = errors.New("shift template not found")
	ErrDuplicateSchedule    = errors.New("a schedule already exists for this employee and date")
	ErrEmployeeResigned     = errors.New("employee has resigned")
	ErrAfterLastWorkingDay  = errors.New("date is after the employee's last working day")
	ErrPastDateNotAllowed   = errors.New("past-dated schedules require an elevated role")
	ErrOutsideEditWindow    = errors.New("date is outside your schedule edit window")
	ErrExtraShiftNotFound   = errors.New("extra shift request not found")
	ErrExtraShiftProcessed  = errors.New("extra shift request has already been processed")
)
