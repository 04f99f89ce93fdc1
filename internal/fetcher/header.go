package fetcher

import (
	"net/http"
)

// HeaderFetcher 요청에 지정되지 않은 기본 헤더를 채워 넣습니다.
// 요청에 이미 있는 헤더는 덮어쓰지 않습니다.
type HeaderFetcher struct {
	delegate Fetcher
	headers  http.Header
}

var _ Fetcher = (*HeaderFetcher)(nil)

// NewHeaderFetcher 기본 헤더 집합을 적용하는 HeaderFetcher를 생성합니다.
func NewHeaderFetcher(delegate Fetcher, headers http.Header) *HeaderFetcher {
	return &HeaderFetcher{
		delegate: delegate,
		headers:  headers.Clone(),
	}
}

func (f *HeaderFetcher) Do(req *http.Request) (*http.Response, error) {
	var cloned *http.Request
	for key, values := range f.headers {
		if req.Header.Get(key) != "" || len(values) == 0 {
			continue
		}
		if cloned == nil {
			cloned = req.Clone(req.Context())
		}
		cloned.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}

	if cloned == nil {
		return f.delegate.Do(req)
	}

	return f.delegate.Do(cloned)
}
