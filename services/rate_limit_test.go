package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLocalLimiter builds a limiter without Redis so Check exercises the
// process-local fallback window.
func newLocalLimiter(now *time.Time) *RateLimitService {
	return &RateLimitService{
		now:      func() time.Time { return *now },
		fallback: make(map[string]*attemptWindow),
	}
}

func TestRateLimitAllowsBudget(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc := newLocalLimiter(&now)
	ctx := context.Background()

	for i := 0; i < bookingMaxAttempts; i++ {
		info, err := svc.Check(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, info.Allowed)
		assert.Equal(t, bookingMaxAttempts-i-1, info.Remaining)
	}
}

func TestRateLimitBlocksFourthAttempt(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc := newLocalLimiter(&now)
	ctx := context.Background()

	for i := 0; i < bookingMaxAttempts; i++ {
		_, err := svc.Check(ctx, "203.0.113.7")
		require.NoError(t, err)
	}

	info, err := svc.Check(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 10, info.CooldownMinutes)
	require.NotNil(t, info.ResetTime)
	assert.Equal(t, now.Add(bookingWindow), *info.ResetTime)
	assert.Contains(t, info.Message, "10 Minuten")
}

func TestRateLimitWindowReset(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc := newLocalLimiter(&now)
	ctx := context.Background()

	for i := 0; i < bookingMaxAttempts+1; i++ {
		_, err := svc.Check(ctx, "203.0.113.7")
		require.NoError(t, err)
	}

	now = now.Add(bookingWindow)

	info, err := svc.Check(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
	assert.Equal(t, bookingMaxAttempts-1, info.Remaining)
}

func TestRateLimitCooldownShrinks(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc := newLocalLimiter(&now)
	ctx := context.Background()

	for i := 0; i < bookingMaxAttempts; i++ {
		_, err := svc.Check(ctx, "203.0.113.7")
		require.NoError(t, err)
	}

	now = now.Add(7*time.Minute + 30*time.Second)

	info, err := svc.Check(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, info.Allowed)
	assert.Equal(t, 3, info.CooldownMinutes)
}

func TestRateLimitIdentifiersAreIndependent(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc := newLocalLimiter(&now)
	ctx := context.Background()

	for i := 0; i < bookingMaxAttempts+1; i++ {
		_, err := svc.Check(ctx, "203.0.113.7")
		require.NoError(t, err)
	}

	info, err := svc.Check(ctx, "198.51.100.23")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
}

func TestRateLimitReset(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc := newLocalLimiter(&now)
	ctx := context.Background()

	for i := 0; i < bookingMaxAttempts+1; i++ {
		_, err := svc.Check(ctx, "203.0.113.7")
		require.NoError(t, err)
	}

	require.NoError(t, svc.Reset(ctx, "203.0.113.7"))

	info, err := svc.Check(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
}
