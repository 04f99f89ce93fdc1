package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/zalando-scraper/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidateContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		contentType string
		want        int
	}{
		{name: "JSON", body: `{"url":"x"}`, contentType: echo.MIMEApplicationJSON, want: http.StatusOK},
		{name: "charset 포함", body: `{"url":"x"}`, contentType: "Application/JSON; charset=utf-8", want: http.StatusOK},
		{name: "본문 없음", body: "", contentType: "", want: http.StatusOK},
		{name: "헤더 누락", body: `{"url":"x"}`, contentType: "", want: http.StatusUnsupportedMediaType},
		{name: "다른 타입", body: "url=x", contentType: echo.MIMEApplicationForm, want: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			e.HTTPErrorHandler = httputil.ErrorHandler
			e.POST("/scrape", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, ValidateContentType(echo.MIMEApplicationJSON))

			req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
