package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/scrape"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/constants"
	"github.com/darkkaiser/zalando-scraper/internal/service/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitGroupTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("서비스가 제한 시간 안에 종료되지 않았습니다")
	}
}

func TestNewService_RequiredDependencies(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, constants.PanicMsgAppConfigRequired, func() {
		NewService(nil, stubScraper{}, buildInfoForTest)
	})
	assert.PanicsWithValue(t, constants.PanicMsgScraperRequired, func() {
		NewService(newTestAppConfig(), nil, buildInfoForTest)
	})
}

func TestService_Lifecycle(t *testing.T) {
	t.Parallel()

	s := NewService(newTestAppConfig(), stubScraper{resp: &scrape.Response{Success: true}}, buildInfoForTest)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	var addr net.Addr
	select {
	case addr = <-s.Listening():
	case <-time.After(5 * time.Second):
		t.Fatal("서버가 포트를 열지 않았습니다")
	}

	transport := &http.Transport{DisableKeepAlives: true}
	defer transport.CloseIdleConnections()
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", addr.(*net.TCPAddr).Port)

	// 헬스체크
	resp, err := client.Get(baseURL + "/api/v1/health")
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "Zalando Scraper API", health["service"])

	// 상품 수집
	resp, err = client.Post(baseURL+"/api/v1/scrape-product", "application/json",
		strings.NewReader(`{"url":"https://www.zalando.co.uk/x-ni112o0jf-a11.html"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// 중복 시작은 무시
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	cancel()
	waitGroupTimeout(t, &wg)

	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	assert.False(t, s.running)
}

func TestService_PortBindFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := newTestAppConfig()
	cfg.API.ListenPort = ln.Addr().(*net.TCPAddr).Port

	s := NewService(cfg, stubScraper{}, buildInfoForTest)

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(context.Background(), &wg))

	// 서버가 바로 종료되고 서비스 루프도 정리됨
	waitGroupTimeout(t, &wg)
}

func TestService_LimiterCleanupJob(t *testing.T) {
	t.Parallel()

	s := NewService(newTestAppConfig(), stubScraper{}, buildInfoForTest)
	job := s.LimiterCleanupJob()

	assert.Equal(t, "0 */10 * * * *", job.Spec)
	assert.NotPanics(t, job.Run)

	// 스케줄러에 등록할 수 있는 표현식이어야 함
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, scheduler.NewService(job).Start(ctx, &wg))
	cancel()
	waitGroupTimeout(t, &wg)
}
