// Package metrics 상품 수집 요청과 데이터 소스 결과에 대한 Prometheus 지표를 제공합니다.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 데이터 소스 결과 라벨 값
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePanic   = "panic"
)

var (
	// SourceOutcomesTotal 데이터 소스(api, crawl, raw)별 실행 결과 수
	SourceOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zalando_scraper_source_outcomes_total",
			Help: "Total number of data source executions by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	// SourceDuration 데이터 소스별 실행 시간
	SourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zalando_scraper_source_duration_seconds",
			Help:    "Duration of data source executions in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms → ~25s
		},
		[]string{"source"},
	)

	// ScrapeDuration 상품 수집 요청 하나의 전체 처리 시간
	ScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zalando_scraper_scrape_duration_seconds",
			Help:    "Duration of product scrape requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms → ~51s
		},
		[]string{"success"},
	)
)

// ObserveSource 데이터 소스 하나의 실행 결과와 소요 시간을 기록합니다.
func ObserveSource(source, outcome string, start time.Time) {
	SourceOutcomesTotal.WithLabelValues(source, outcome).Inc()
	SourceDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// ObserveScrape 상품 수집 요청의 처리 시간을 기록합니다.
func ObserveScrape(success bool, start time.Time) {
	label := "false"
	if success {
		label = "true"
	}
	ScrapeDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

// Handler 기본 레지스트리의 지표를 노출하는 HTTP 핸들러를 반환합니다.
func Handler() http.Handler {
	return promhttp.Handler()
}
