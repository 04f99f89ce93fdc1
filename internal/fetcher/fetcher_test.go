package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetcherFunc 함수를 Fetcher로 사용하기 위한 어댑터입니다.
type fetcherFunc func(req *http.Request) (*http.Response, error)

func (f fetcherFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestHeaderFetcher(t *testing.T) {
	t.Parallel()

	var got http.Header
	inner := fetcherFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Clone()
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	defaults := http.Header{}
	defaults.Set("User-Agent", "default-agent")
	defaults.Set("Accept-Language", "en-US,en;q=0.9")

	f := NewHeaderFetcher(inner, defaults)

	req, err := http.NewRequest(http.MethodGet, "https://www.zalando.it/", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom-agent")

	_, err = f.Do(req)
	require.NoError(t, err)

	assert.Equal(t, "custom-agent", got.Get("User-Agent"), "요청에 지정된 헤더는 유지되어야 합니다")
	assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
	assert.Empty(t, req.Header.Get("Accept-Language"), "원본 요청은 변경되지 않아야 합니다")
}

func TestHTTPFetcher_CookieJar(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.SetCookie(w, &http.Cookie{Name: "frsx", Value: "token-1", Path: "/"})
			return
		}
		c, err := r.Cookie("frsx")
		if err != nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(c.Value))
	}))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	f := NewHTTPFetcher(WithCookieJar(jar), WithTimeout(5*time.Second))

	resp, err := Get(context.Background(), f, srv.URL+"/")
	require.NoError(t, err)
	drainAndCloseBody(resp.Body)

	body, err := FetchPage(context.Background(), f, srv.URL+"/api")
	require.NoError(t, err)
	assert.Equal(t, "token-1", body)
}

func TestCheckResponseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     int
		wantErr  bool
		wantType apperrors.ErrorType
	}{
		{"200", http.StatusOK, false, apperrors.Unknown},
		{"204", http.StatusNoContent, false, apperrors.Unknown},
		{"404는 NotFound", http.StatusNotFound, true, apperrors.NotFound},
		{"403은 SourceUnavailable", http.StatusForbidden, true, apperrors.SourceUnavailable},
		{"503은 SourceUnavailable", http.StatusServiceUnavailable, true, apperrors.SourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{
				StatusCode: tt.code,
				Status:     http.StatusText(tt.code),
				Header:     http.Header{},
				Body:       http.NoBody,
			}

			err := CheckResponseStatus(resp)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantType))

			var statusErr *HTTPStatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.code, statusErr.StatusCode)
		})
	}
}

func TestFetchPage_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not here"))
	}))
	defer srv.Close()

	_, err := FetchPage(context.Background(), NewHTTPFetcher(), srv.URL)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "not here", statusErr.BodySnippet)
}

func TestReadBody(t *testing.T) {
	t.Parallel()

	t.Run("charset 변환", func(t *testing.T) {
		t.Parallel()

		// ISO-8859-1의 0xE8 = 'è'
		resp := &http.Response{
			Header: http.Header{"Content-Type": []string{"text/html; charset=iso-8859-1"}},
			Body:   ioNopCloser("Taglia unica \xe8"),
		}

		body, err := ReadBody(resp, 0)
		require.NoError(t, err)
		assert.Equal(t, "Taglia unica è", body)
	})

	t.Run("허용 크기 초과", func(t *testing.T) {
		t.Parallel()

		resp := &http.Response{
			Header: http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
			Body:   ioNopCloser(strings.Repeat("a", 11)),
		}

		_, err := ReadBody(resp, 10)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.MalformedResponse))
	})
}

func TestParseHTML(t *testing.T) {
	t.Parallel()

	doc, err := ParseHTML(`<html><body><h1 data-testid="product-name">Socks</h1></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Socks", doc.Find("[data-testid='product-name']").Text())
}

func TestLoggingFetcher_PassesThroughResult(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := fetcherFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return &http.Response{StatusCode: http.StatusTeapot, Body: http.NoBody}, nil
	})

	req, err := http.NewRequest(http.MethodGet, "https://www.zalando.it/?token=secret", nil)
	require.NoError(t, err)

	resp, err := NewLoggingFetcher(inner).Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequest(http.MethodGet, "https://user:pw@www.zalando.it/p.html?token=secret", nil)
	require.NoError(t, err)

	redacted := redactURL(req.URL)
	assert.NotContains(t, redacted, "secret")
	assert.NotContains(t, redacted, "pw")
	assert.Contains(t, redacted, "www.zalando.it/p.html")
	assert.Empty(t, redactURL(nil))
}
