package driversync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/pkg/aaalive"
)

func newTestService(client *aaalive.Client) *DriverSyncService {
	loc, _ := time.LoadLocation("Asia/Kuala_Lumpur")
	return &DriverSyncService{client: client, loc: loc}
}

func TestClockOnDate(t *testing.T) {
	s := newTestService(nil)
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	at, err := s.clockOnDate(date, "08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, 10, at.Day())
	assert.Equal(t, "Asia/Kuala_Lumpur", at.Location().String())

	at, err = s.clockOnDate(date, " 18:05:30 ")
	require.NoError(t, err)
	assert.Equal(t, 18, at.Hour())
	assert.Equal(t, 5, at.Minute())

	_, err = s.clockOnDate(date, "late")
	assert.Error(t, err)
}

func TestUnconfiguredUpstream(t *testing.T) {
	s := newTestService(aaalive.NewClient("", ""))
	ctx := context.Background()

	assert.False(t, s.Configured())
	assert.ErrorIs(t, s.Test(ctx), ErrNotConfigured)

	_, err := s.Drivers(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.Shifts(ctx, "2025-01-10")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.SyncRange(ctx, time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestShiftsRejectsBadDate(t *testing.T) {
	s := newTestService(aaalive.NewClient("https://api.example.test", "key"))

	_, err := s.Shifts(context.Background(), "10/01/2025")
	assert.Error(t, err)
}
