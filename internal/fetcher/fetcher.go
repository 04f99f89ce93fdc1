// Package fetcher 상품 페이지와 API를 호출하는 HTTP 요청 체인을 제공합니다.
//
// 모든 구성 요소는 Fetcher 인터페이스를 구현하며 데코레이터 방식으로 조합합니다.
//
//	f := fetcher.NewRetryFetcher(
//	    fetcher.NewLoggingFetcher(
//	        fetcher.NewHeaderFetcher(fetcher.NewHTTPFetcher(), headers)),
//	    2, time.Second, 5*time.Second)
package fetcher

import (
	"context"
	"io"
	"net/http"
	"sync"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 하며, Context가 취소되면 즉시 요청을 중단해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get url로 GET 요청을 전송합니다. 실패 시 응답 Body를 비우고 닫습니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

const maxDrainBytes = 64 * 1024

var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// drainAndCloseBody 커넥션 재사용을 위해 남은 본문을 일정량까지 읽어 버리고 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}
