package commission

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPeriodBounds(t *testing.T) {
	start, end := PeriodBounds(2025, 2)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodBoundsJanuary(t *testing.T) {
	// January's period reaches back into the previous year.
	start, end := PeriodBounds(2025, 1)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), end)
}

func TestPoolAndPerShiftMath(t *testing.T) {
	// 120000 at 6% gives a 7200 pool; 44 effective shifts split it into
	// 163.64 per shift, 3600.00 for 22 effective shifts apiece.
	pool := decimal.NewFromInt(120000).Mul(DefaultRate).Div(decimal.NewFromInt(100)).Round(2)
	assert.True(t, pool.Equal(decimal.NewFromInt(7200)), "pool = %s", pool)

	perShift := pool.Div(decimal.NewFromInt(44)).Round(4)
	assert.Equal(t, "163.6364", perShift.StringFixed(4))

	payout := perShift.Mul(decimal.NewFromInt(22)).Round(2)
	assert.Equal(t, "3600.00", payout.StringFixed(2))
}
