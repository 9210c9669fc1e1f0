package resignation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoticeDays(t *testing.T) {
	cases := []struct {
		serviceMonths int
		want          int
	}{
		{0, 28},
		{23, 28},
		{24, 42},
		{59, 42},
		{60, 56},
		{120, 56},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NoticeDays(c.serviceMonths), "serviceMonths=%d", c.serviceMonths)
	}
}

func TestNoticeShortfall(t *testing.T) {
	r := Resignation{RequiredNoticeDays: 42, ActualNoticeDays: 30}
	assert.Equal(t, 12, r.NoticeShortfall())

	r.ActualNoticeDays = 50
	assert.Equal(t, 0, r.NoticeShortfall())

	r.ActualNoticeDays = 30
	r.NoticeWaived = true
	assert.Equal(t, 0, r.NoticeShortfall())
}
