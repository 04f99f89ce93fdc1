package api

import (
	"context"
	"testing"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/pkg/version"
	"github.com/darkkaiser/zalando-scraper/internal/scrape"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubScraper 항상 같은 응답을 반환하는 Scraper입니다.
type stubScraper struct {
	resp *scrape.Response
}

func (s stubScraper) Scrape(context.Context, string) *scrape.Response {
	return s.resp
}

func newTestAppConfig() *config.AppConfig {
	return &config.AppConfig{
		API: config.APIConfig{
			ListenPort:         0,
			CORS:               config.CORSConfig{AllowOrigins: []string{"*"}},
			RateLimitPerMinute: 60,
			RequestTimeout:     5 * time.Second,
			LimiterCleanupSpec: "0 */10 * * * *",
		},
	}
}

var buildInfoForTest = version.Info{Version: "abc1234"}
