package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 테스트에서 시간을 직접 움직이기 위한 시계입니다.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRateLimiter(perMinute int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := NewRateLimiter(perMinute)
	l.now = clock.Now
	return l, clock
}

func TestNewRateLimiter_InvalidValue(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		assert.Panics(t, func() { NewRateLimiter(n) })
	}
}

func TestRateLimiter_PerMinuteQuota(t *testing.T) {
	t.Parallel()

	l, clock := newTestRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.allow("10.0.0.1"), "요청 %d는 허용되어야 합니다", i+1)
	}
	assert.False(t, l.allow("10.0.0.1"))

	// 다른 IP는 독립적인 버킷을 사용
	assert.True(t, l.allow("10.0.0.2"))

	// 1분/3 = 20초 후 토큰 하나가 다시 채워짐
	clock.Advance(20 * time.Second)
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	t.Parallel()

	l, clock := newTestRateLimiter(10)

	l.allow("10.0.0.1")
	clock.Advance(5 * time.Minute)
	l.allow("10.0.0.2")
	clock.Advance(6 * time.Minute)

	require.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.Cleanup(10*time.Minute))
	assert.Equal(t, 1, l.Len())

	assert.Equal(t, 0, l.Cleanup(10*time.Minute))
	clock.Advance(10 * time.Minute)
	assert.Equal(t, 1, l.Cleanup(10*time.Minute))
	assert.Zero(t, l.Len())
}

func TestRateLimiter_MaxIPs(t *testing.T) {
	t.Parallel()

	l, _ := newTestRateLimiter(1)
	for i := 0; i < maxIPRateLimiters+5; i++ {
		l.allow(time.Duration(i).String())
	}

	assert.Equal(t, maxIPRateLimiters, l.Len())
}

func TestRateLimiter_Middleware(t *testing.T) {
	t.Parallel()

	l, _ := newTestRateLimiter(1)

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Use(l.Middleware())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(echo.HeaderXRealIP, "192.0.2.10")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	assert.Equal(t, http.StatusOK, first.Code)

	second := do()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, retryAfterSeconds, second.Header().Get(retryAfter))
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	l := NewRateLimiter(1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				l.allow("10.0.0.1")
			}
			l.Cleanup(time.Hour)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, l.Len())
}
