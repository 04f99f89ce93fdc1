package structured

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/fetcher"
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
)

// xsrfCookieName 위조 방지 토큰을 담고 있는 쿠키 이름입니다.
const xsrfCookieName = "frsx"

// Session 구조화 API 호출에 필요한 쿠키를 관리합니다.
//
// 홈페이지를 인증 없이 한 번 요청하면 위조 방지 쿠키가 발급되며, 발급 시각으로부터 ttl이 지나면
// 다음 Ensure 호출에서 다시 발급받습니다. 세션은 요청 하나에 속하며 요청 사이에 공유하지 않습니다.
type Session struct {
	mu sync.Mutex

	fetcher     fetcher.Fetcher
	jar         http.CookieJar
	homepageURL *url.URL

	ttl             time.Duration
	homepageTimeout time.Duration

	lastRefresh time.Time
	now         func() time.Time
}

// NewSession 새로운 세션을 생성합니다. f는 jar를 사용하는 Fetcher여야 합니다.
func NewSession(f fetcher.Fetcher, jar http.CookieJar, homepageURL *url.URL, ttl, homepageTimeout time.Duration) *Session {
	return &Session{
		fetcher:         f,
		jar:             jar,
		homepageURL:     homepageURL,
		ttl:             ttl,
		homepageTimeout: homepageTimeout,
		now:             time.Now,
	}
}

// Ensure 쿠키가 만료되었으면 홈페이지를 요청해 새로 발급받습니다.
// 홈페이지의 응답 상태 코드는 확인하지 않으며, 네트워크 에러만 실패로 취급합니다.
func (s *Session) Ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastRefresh.IsZero() && s.now().Sub(s.lastRefresh) < s.ttl {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.homepageTimeout)
	defer cancel()

	resp, err := fetcher.Get(ctx, s.fetcher, s.homepageURL.String())
	if err != nil {
		return apperrors.Wrap(err, apperrors.SourceUnavailable, "세션 쿠키 발급을 위한 홈페이지 요청에 실패했습니다")
	}
	resp.Body.Close()

	s.lastRefresh = s.now()

	applog.WithComponentAndFields(component, applog.Fields{
		"homepage":    s.homepageURL.String(),
		"status_code": resp.StatusCode,
		"has_xsrf":    s.xsrfTokenLocked() != "",
	}).Debug("세션 쿠키 갱신 완료")

	return nil
}

// Invalidate 다음 Ensure 호출에서 쿠키를 반드시 다시 발급받도록 만듭니다.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRefresh = time.Time{}
}

// XSRFToken 위조 방지 토큰을 반환합니다. 없으면 빈 문자열입니다.
func (s *Session) XSRFToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.xsrfTokenLocked()
}

// xsrfTokenLocked 이름이 정확히 일치하는 쿠키를 먼저 찾고, 없으면 이름에 토큰 이름이 포함된 쿠키를 찾습니다.
func (s *Session) xsrfTokenLocked() string {
	cookies := s.jar.Cookies(s.homepageURL)
	for _, c := range cookies {
		if c.Name == xsrfCookieName && c.Value != "" {
			return c.Value
		}
	}
	for _, c := range cookies {
		if strings.Contains(strings.ToLower(c.Name), xsrfCookieName) && c.Value != "" {
			return c.Value
		}
	}
	return ""
}
