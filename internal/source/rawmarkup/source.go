package rawmarkup

import (
	"context"
	"net/http"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/fetcher"
)

// MarkupSource 상품 페이지의 원본 마크업을 가져옵니다.
type MarkupSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// MarkupSourceFunc 일반 함수를 MarkupSource로 사용하기 위한 어댑터입니다.
type MarkupSourceFunc func(ctx context.Context, url string) (string, error)

func (f MarkupSourceFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

func pageHeaders() http.Header {
	h := make(http.Header)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "it-IT,it;q=0.9,en-US;q=0.8,en;q=0.7")
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36")
	return h
}

// HTTPMarkupSource 상품 페이지를 HTTP GET으로 가져옵니다.
// 일시적 오류는 지수 백오프로 재시도하며, 본문은 Content-Type의 charset에 맞춰 UTF-8로 변환합니다.
type HTTPMarkupSource struct {
	fetcher fetcher.Fetcher
}

var _ MarkupSource = (*HTTPMarkupSource)(nil)

// NewHTTPMarkupSource 새로운 HTTPMarkupSource를 생성합니다.
func NewHTTPMarkupSource(cfg config.RawMarkupConfig, opts ...fetcher.Option) *HTTPMarkupSource {
	httpOpts := append([]fetcher.Option{fetcher.WithTimeout(cfg.RequestTimeout)}, opts...)

	var f fetcher.Fetcher = fetcher.NewHeaderFetcher(fetcher.NewHTTPFetcher(httpOpts...), pageHeaders())
	f = fetcher.NewRetryFetcher(f, cfg.MaxRetries, cfg.MinRetryDelay, cfg.MaxRetryDelay)

	return &HTTPMarkupSource{fetcher: fetcher.NewLoggingFetcher(f)}
}

func (s *HTTPMarkupSource) Fetch(ctx context.Context, url string) (string, error) {
	return fetcher.FetchPage(ctx, s.fetcher, url)
}
