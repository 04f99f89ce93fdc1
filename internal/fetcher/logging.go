package fetcher

import (
	"net/http"
	"net/url"
	"time"

	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
)

// LoggingFetcher 요청마다 소요 시간과 결과를 기록합니다.
type LoggingFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*LoggingFetcher)(nil)

// NewLoggingFetcher 새로운 LoggingFetcher를 생성합니다.
func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      redactURL(req.URL),
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponent(component).WithContext(req.Context()).WithFields(fields).Warn("HTTP 요청 실패")

		return resp, err
	}

	applog.WithComponent(component).WithContext(req.Context()).WithFields(fields).Debug("HTTP 요청 완료")

	return resp, nil
}

// redactURL 로그에 남길 URL에서 쿼리 값과 사용자 정보를 가립니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	redacted := *u
	redacted.User = nil
	if redacted.RawQuery != "" {
		q := redacted.Query()
		for key := range q {
			q.Set(key, "***")
		}
		redacted.RawQuery = q.Encode()
	}

	return redacted.String()
}
