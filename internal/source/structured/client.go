// Package structured 상품 카드와 SKU 정보를 구조화 API(GraphQL)로 조회하는 데이터 소스입니다.
//
// 모든 요청은 사전 등록된 쿼리 식별자와 변수로 구성된 배치 배열을 하나의 엔드포인트로 POST합니다.
// 클라이언트는 요청 단위로 생성되며 자신만의 쿠키 세션을 가집니다.
package structured

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/fetcher"
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
)

const component = "source.structured"

const (
	graphqlPath = "/api/graphql/"

	// viewportWidth 데스크톱 레이아웃 응답을 받기 위해 전송하는 뷰포트 너비입니다.
	viewportWidth = "1016"
)

// defaultHeaders 홈페이지 요청과 API 요청에 공통으로 전송하는 브라우저 헤더입니다.
func defaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", "en-US,en;q=0.9,ar;q=0.8")
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36")
	h.Set("X-Frontend-Type", "browser")
	h.Set("X-Zalando-Feature", "pdp")
	h.Set("X-Zalando-Intent-Context", "navigationTargetGroup=MEN")
	return h
}

// Client 구조화 API 클라이언트입니다.
type Client struct {
	fetcher  fetcher.Fetcher
	session  *Session
	endpoint string

	requestTimeout time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
}

type options struct {
	baseURL   string
	transport http.RoundTripper
}

// Option Client 생성 옵션입니다.
type Option func(*options)

// WithBaseURL 'https://www.<domain>' 대신 사용할 기준 URL을 지정합니다.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTransport HTTP Transport를 교체합니다.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// NewClient domain(예: zalando.it)의 구조화 API를 호출하는 클라이언트를 생성합니다.
func NewClient(domain string, cfg config.StructuredConfig, opts ...Option) (*Client, error) {
	o := options{baseURL: "https://www." + domain}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "구조화 API 기준 URL이 올바르지 않습니다")
	}
	homepage := base.JoinPath("/")

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "쿠키 저장소 생성에 실패했습니다")
	}

	httpOpts := []fetcher.Option{fetcher.WithCookieJar(jar)}
	if o.transport != nil {
		httpOpts = append(httpOpts, fetcher.WithTransport(o.transport))
	}
	f := fetcher.NewLoggingFetcher(fetcher.NewHeaderFetcher(fetcher.NewHTTPFetcher(httpOpts...), defaultHeaders()))

	return &Client{
		fetcher:        f,
		session:        NewSession(f, jar, homepage, cfg.SessionTTL, cfg.HomepageTimeout),
		endpoint:       base.JoinPath(graphqlPath).String(),
		requestTimeout: cfg.RequestTimeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBaseDelay: cfg.RetryBaseDelay,
	}, nil
}

// Post 쿼리 하나를 배치 배열로 감싸 전송하고 응답 본문을 반환합니다.
//
// 재시도 정책 (최대 1 + maxRetries회 시도):
//   - 200: 본문 반환
//   - 401, 403: 세션을 무효화하고 대기 없이 재시도
//   - 그 외 상태 코드와 네트워크 에러: retryBaseDelay * 2^attempt 대기 후 재시도
//
// 모든 시도가 실패하면 SourceUnavailable 에러를 반환합니다.
func (c *Client) Post(ctx context.Context, q Query) ([]byte, error) {
	payload, err := json.Marshal([]Query{q})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "쿼리 직렬화에 실패했습니다")
	}

	attempts := c.maxRetries + 1
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"query":    q.Name(),
		"endpoint": c.endpoint,
	})

	for attempt := range attempts {
		body, status, err := c.postOnce(ctx, payload)
		if err != nil {
			if ctx.Err() != nil {
				return nil, apperrors.Wrap(ctx.Err(), apperrors.Timeout, "구조화 API 요청이 취소되었습니다")
			}
			if attempt == attempts-1 {
				return nil, apperrors.Wrap(err, apperrors.SourceUnavailable, "구조화 API 요청 중 네트워크 에러가 발생했습니다")
			}

			logger.WithFields(applog.Fields{"attempt": attempt + 1, "error": err.Error()}).Warn("구조화 API 요청 실패: 재시도합니다")
			if err := fetcher.SleepContext(ctx, c.backoff(attempt)); err != nil {
				return nil, apperrors.Wrap(err, apperrors.Timeout, "구조화 API 재시도 대기 중 요청이 취소되었습니다")
			}
			continue
		}

		switch status {
		case http.StatusOK:
			return body, nil

		case http.StatusUnauthorized, http.StatusForbidden:
			logger.WithFields(applog.Fields{"attempt": attempt + 1, "status_code": status}).Warn("구조화 API 인증 실패: 세션을 갱신합니다")
			c.session.Invalidate()

		default:
			logger.WithFields(applog.Fields{"attempt": attempt + 1, "status_code": status}).Warn("구조화 API 응답 상태 이상")
			if attempt < attempts-1 {
				if err := fetcher.SleepContext(ctx, c.backoff(attempt)); err != nil {
					return nil, apperrors.Wrap(err, apperrors.Timeout, "구조화 API 재시도 대기 중 요청이 취소되었습니다")
				}
			}
		}
	}

	return nil, apperrors.Newf(apperrors.SourceUnavailable, "구조화 API 재시도를 모두 소진했습니다 (query=%s, attempts=%d)", q.Name(), attempts)
}

// postOnce 세션을 확인한 뒤 요청을 한 번 전송합니다. 200이 아닌 응답은 본문을 읽지 않습니다.
func (c *Client) postOnce(ctx context.Context, payload []byte) ([]byte, int, error) {
	if err := c.session.Ensure(ctx); err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Viewport-Width", viewportWidth)
	if token := c.session.XSRFToken(); token != "" {
		req.Header.Set("X-Xsrf-Token", token)
	}

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, nil
	}

	body, err := fetcher.ReadBody(resp, fetcher.DefaultMaxBodyBytes)
	if err != nil {
		return nil, 0, err
	}

	return []byte(body), resp.StatusCode, nil
}

// backoff attempt번째(0부터) 실패 후 기다릴 시간입니다.
func (c *Client) backoff(attempt int) time.Duration {
	return c.retryBaseDelay * time.Duration(1<<attempt)
}
