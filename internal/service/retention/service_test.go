package retention

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
)

func photoKey(s string) *string { return &s }

func TestMediaFieldsCoversEveryEvent(t *testing.T) {
	rec := attendance.ClockRecord{
		ClockIn1Photo:  photoKey("attendance/a.jpg"),
		ClockOut1Photo: photoKey("attendance/b.jpg"),
		ClockIn2Photo:  photoKey("attendance/c.jpg"),
		ClockOut2Photo: photoKey("attendance/d.jpg"),
	}

	fields, paths := mediaFields(rec)

	assert.Equal(t, []string{
		"clock_in_1_photo", "clock_out_1_photo", "clock_in_2_photo", "clock_out_2_photo",
	}, fields)
	assert.Equal(t, []string{
		"attendance/a.jpg", "attendance/b.jpg", "attendance/c.jpg", "attendance/d.jpg",
	}, paths)
}

func TestMediaFieldsSkipsEmptySlots(t *testing.T) {
	rec := attendance.ClockRecord{ClockOut1Photo: photoKey("attendance/b.jpg")}

	fields, paths := mediaFields(rec)

	assert.Equal(t, []string{"clock_out_1_photo"}, fields)
	assert.Equal(t, []string{"attendance/b.jpg"}, paths)
}
