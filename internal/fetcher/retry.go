package fetcher

import (
	"context"
	"crypto/x509"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
)

const (
	maxAllowedRetries    = 10
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적 오류(네트워크 타임아웃, 5xx, 408, 429)가 발생하면 지수 백오프로 재시도합니다.
//
//   - 대기 시간: minRetryDelay * 2^(n-1)을 maxRetryDelay로 제한한 뒤 Full Jitter 적용
//   - Retry-After 헤더가 있으면 그 값을 우선하며, maxRetryDelay를 넘으면 재시도하지 않습니다.
//   - 멱등하지 않은 메서드(POST 등)나 본문을 다시 만들 수 없는 요청은 재시도하지 않습니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher를 생성합니다. 범위를 벗어난 설정값은 보정됩니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	maxRetries = min(max(maxRetries, 0), maxAllowedRetries)

	if minRetryDelay < 0 {
		minRetryDelay = 0
	}
	if maxRetryDelay == 0 {
		maxRetryDelay = defaultMaxRetryDelay
	}
	if maxRetryDelay < minRetryDelay {
		maxRetryDelay = minRetryDelay
	}

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	retries := f.maxRetries
	if !isIdempotentMethod(req.Method) || (req.Body != nil && req.Body != http.NoBody && req.GetBody == nil) {
		retries = 0
	}

	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			delay, ok := f.nextDelay(attempt, lastResp)
			if !ok {
				drainAndCloseBody(lastResp.Body)
				return nil, apperrors.New(apperrors.SourceUnavailable, "서버가 요구한 재시도 대기 시간(Retry-After)이 허용 범위를 초과했습니다")
			}

			fields := applog.Fields{
				"url":         redactURL(req.URL),
				"retry":       attempt,
				"max_retries": retries,
				"delay":       delay.String(),
			}
			if lastErr != nil {
				fields["error"] = lastErr.Error()
			}
			if lastResp != nil {
				fields["status_code"] = lastResp.StatusCode
				drainAndCloseBody(lastResp.Body)
				lastResp = nil
			}
			applog.WithComponent(component).WithContext(req.Context()).WithFields(fields).Warn("재시도 대기 중: 일시적 오류로 인해 요청 재시도를 준비합니다")

			if err := SleepContext(req.Context(), delay); err != nil {
				return nil, err
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, apperrors.Wrap(err, apperrors.Internal, "재시도 요청 본문 생성에 실패했습니다")
				}
				req = req.Clone(req.Context())
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		if err != nil {
			if resp != nil {
				drainAndCloseBody(resp.Body)
			}
			if req.Context().Err() != nil || !isRetriable(err) {
				return nil, err
			}
			lastErr, lastResp = err, nil
			continue
		}

		if !isRetriableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr, lastResp = nil, resp
	}

	if lastResp != nil {
		// 마지막 응답은 호출자가 상태 코드를 확인할 수 있도록 그대로 돌려줍니다.
		return lastResp, nil
	}

	return nil, apperrors.Wrapf(lastErr, apperrors.SourceUnavailable, "최대 재시도 횟수(%d회)를 초과했습니다", retries)
}

// nextDelay attempt번째 재시도 전에 기다릴 시간을 계산합니다.
// Retry-After가 허용 범위를 넘으면 false를 반환합니다.
func (f *RetryFetcher) nextDelay(attempt int, lastResp *http.Response) (time.Duration, bool) {
	if lastResp != nil {
		if d, ok := parseRetryAfter(lastResp.Header.Get("Retry-After")); ok {
			return d, d <= f.maxRetryDelay
		}
	}

	if f.minRetryDelay == 0 {
		return 0, true
	}

	delay := f.minRetryDelay * time.Duration(1<<(attempt-1))
	if delay > f.maxRetryDelay || delay <= 0 {
		delay = f.maxRetryDelay
	}

	jittered := time.Duration(rand.Int64N(int64(delay) + 1))
	if jittered < time.Millisecond {
		jittered = f.minRetryDelay
	}

	return jittered, true
}

// SleepContext d만큼 대기하며, 그 전에 ctx가 끝나면 ctx의 에러를 반환합니다.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetriableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}
	return code >= 500
}

func isRetriable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Err.Error()
		if strings.Contains(msg, "stopped after 10 redirects") ||
			strings.Contains(msg, "invalid control character in URL") ||
			strings.Contains(urlErr.Error(), "unsupported protocol scheme") {
			return false
		}
	}

	var hostnameErr x509.HostnameError
	var unknownAuthorityErr x509.UnknownAuthorityError
	var certInvalidErr x509.CertificateInvalidError
	if errors.As(err, &hostnameErr) || errors.As(err, &unknownAuthorityErr) || errors.As(err, &certInvalidErr) {
		return false
	}

	return true
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// parseRetryAfter 초 단위 숫자 또는 HTTP 날짜 형식의 Retry-After 값을 해석합니다.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		return max(time.Until(date), 0), true
	}

	return 0, false
}
