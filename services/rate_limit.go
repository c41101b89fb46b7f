package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/alpenrent/alpenrent_api/dto"
)

const (
	// Booking-creation attempt budget per caller identifier.
	bookingMaxAttempts = 3
	bookingWindow      = 10 * time.Minute

	rateLimitKeyPrefix = "ratelimit:booking:"
)

// RateLimitService bounds booking-creation attempts per caller over a
// rolling window. The counter lives in Redis so the limit holds across
// restarts and multiple instances; when Redis is unreachable the
// service degrades to a process-local map rather than blocking users.
type RateLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService
	now      func() time.Time

	mutex    sync.Mutex
	fallback map[string]*attemptWindow
}

type attemptWindow struct {
	count       int
	windowStart time.Time
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.now = time.Now
	svc.fallback = make(map[string]*attemptWindow)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Check records an attempt for the identifier and reports whether it is
// allowed. The window starts at the first attempt and resets once it
// elapses, regardless of rejections in between.
func (svc *RateLimitService) Check(ctx context.Context, identifier string) (*dto.RateLimitInfo, error) {
	if svc.redisSvc == nil || svc.redisSvc.GetClient() == nil {
		return svc.checkLocal(identifier), nil
	}

	key := rateLimitKeyPrefix + identifier

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		log.WithError(err).WithField("identifier", identifier).
			Warn("Rate limit store unavailable, falling back to local counter")
		return svc.checkLocal(identifier), nil
	}

	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, key, bookingWindow); err != nil {
			log.WithError(err).Warn("Failed to set rate limit window expiry")
		}
	}

	if count > bookingMaxAttempts {
		ttl, err := svc.redisSvc.TTL(ctx, key)
		if err != nil || ttl <= 0 {
			ttl = bookingWindow
		}
		return rejected(svc.now().Add(ttl), ttl), nil
	}

	reset := svc.now().Add(bookingWindow)
	return &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: bookingMaxAttempts - int(count),
		ResetTime: &reset,
	}, nil
}

// Reset clears the counter for an identifier (admin support tooling).
func (svc *RateLimitService) Reset(ctx context.Context, identifier string) error {
	svc.mutex.Lock()
	delete(svc.fallback, identifier)
	svc.mutex.Unlock()

	if svc.redisSvc == nil || svc.redisSvc.GetClient() == nil {
		return nil
	}
	return svc.redisSvc.Delete(ctx, rateLimitKeyPrefix+identifier)
}

// Stats reports the limiter configuration and fallback-map size.
func (svc *RateLimitService) Stats() map[string]interface{} {
	svc.mutex.Lock()
	tracked := len(svc.fallback)
	svc.mutex.Unlock()

	return map[string]interface{}{
		"max_attempts":     bookingMaxAttempts,
		"window_minutes":   int(bookingWindow.Minutes()),
		"fallback_tracked": tracked,
		"timestamp":        svc.now(),
	}
}

func (svc *RateLimitService) checkLocal(identifier string) *dto.RateLimitInfo {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.now()

	window, exists := svc.fallback[identifier]
	if !exists || now.Sub(window.windowStart) >= bookingWindow {
		svc.fallback[identifier] = &attemptWindow{count: 1, windowStart: now}
		reset := now.Add(bookingWindow)
		return &dto.RateLimitInfo{
			Allowed:   true,
			Remaining: bookingMaxAttempts - 1,
			ResetTime: &reset,
		}
	}

	window.count++
	if window.count > bookingMaxAttempts {
		resetAt := window.windowStart.Add(bookingWindow)
		return rejected(resetAt, resetAt.Sub(now))
	}

	reset := window.windowStart.Add(bookingWindow)
	return &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: bookingMaxAttempts - window.count,
		ResetTime: &reset,
	}
}

func rejected(resetAt time.Time, remaining time.Duration) *dto.RateLimitInfo {
	minutes := int(math.Ceil(remaining.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return &dto.RateLimitInfo{
		Allowed:         false,
		Remaining:       0,
		ResetTime:       &resetAt,
		CooldownMinutes: minutes,
		Message:         fmt.Sprintf("Zu viele Buchungsversuche. Bitte versuchen Sie es in %d Minuten erneut.", minutes),
	}
}
