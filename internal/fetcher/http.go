package fetcher

import (
	"net"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	defaultMaxIdleConns        = 50
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

// HTTPFetcher net/http 클라이언트로 실제 요청을 수행합니다.
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher 생성 옵션입니다.
type Option func(*http.Client)

// WithTimeout 요청 하나의 전체 제한 시간을 지정합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(c *http.Client) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithCookieJar 응답 쿠키를 저장하고 이후 요청에 자동으로 전송할 Jar를 지정합니다.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *http.Client) {
		c.Jar = jar
	}
}

// WithTransport 기본 Transport를 교체합니다. (테스트용)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *http.Client) {
		c.Transport = rt
	}
}

// NewHTTPFetcher 새로운 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	client := &http.Client{
		Timeout:   defaultTimeout,
		Transport: newTransport(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return &HTTPFetcher{client: client}
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          defaultMaxIdleConns,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshakeTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Do 요청을 전송합니다.
func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	return f.client.Do(req)
}

