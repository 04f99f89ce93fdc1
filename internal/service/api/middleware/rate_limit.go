package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/service/api/constants"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// maxIPRateLimiters 메모리에 유지할 수 있는 최대 IP(요청 제한기) 수입니다.
	// 임계값에 도달하면 Go Map의 무작위 순회 특성을 이용해 임의의 항목 하나를 축출합니다.
	maxIPRateLimiters = 10000

	retryAfter = "Retry-After"

	// retryAfterSeconds 제한 초과 시 클라이언트에게 제안하는 대기 시간(초)입니다.
	retryAfterSeconds = "1"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter IP 주소별 Token Bucket 요청 제한기를 관리합니다.
//
// 분당 허용 요청 수만큼의 버킷을 IP마다 두고, 버킷은 1분에 걸쳐 고르게 다시 채워집니다.
// 오래 요청이 없던 IP의 버킷은 Cleanup으로 정리합니다.
type RateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*ipLimiter

	limit rate.Limit
	burst int

	now func() time.Time
}

// NewRateLimiter 분당 requestsPerMinute 요청을 허용하는 RateLimiter를 생성합니다.
//
// Panics:
//   - requestsPerMinute가 0 이하인 경우
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitInvalid, requestsPerMinute))
	}

	return &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    requestsPerMinute,
		now:      time.Now,
	}
}

// allow 특정 IP의 요청을 허용할지 판단합니다. 제한기가 없으면 새로 만듭니다.
func (l *RateLimiter) allow(ip string) bool {
	now := l.now()

	// 읽기 락으로 먼저 확인
	l.mu.RLock()
	entry, exists := l.limiters[ip]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		// Double-check: 다른 고루틴이 이미 생성했을 수 있음
		entry, exists = l.limiters[ip]
		if !exists {
			if len(l.limiters) >= maxIPRateLimiters {
				for oldIP := range l.limiters {
					delete(l.limiters, oldIP)
					break
				}
			}

			entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
			l.limiters[ip] = entry
		}
		l.mu.Unlock()
	}

	l.mu.Lock()
	entry.lastSeen = now
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// Cleanup idleTTL 이상 요청이 없었던 IP의 제한기를 제거하고, 제거한 개수를 반환합니다.
func (l *RateLimiter) Cleanup(idleTTL time.Duration) int {
	threshold := l.now().Add(-idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(threshold) {
			delete(l.limiters, ip)
			evicted++
		}
	}

	if evicted > 0 {
		applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
			"evicted":   evicted,
			"remaining": len(l.limiters),
			"idle_ttl":  idleTTL.String(),
		}).Debug(constants.LogMsgLimitersEvicted)
	}

	return evicted
}

// Len 현재 추적 중인 IP 수를 반환합니다.
func (l *RateLimiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.limiters)
}

// Middleware IP 기반 요청 제한 미들웨어를 반환합니다.
// 제한 초과 시 HTTP 429와 Retry-After 헤더를 반환합니다.
func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !l.allow(ip) {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip":  ip,
					"path":       c.Request().URL.Path,
					"method":     c.Request().Method,
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(retryAfter, retryAfterSeconds)
				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
