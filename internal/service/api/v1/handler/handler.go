// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/zalando-scraper/internal/scrape"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/constants"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// Scraper 상품 URL 하나를 수집하여 응답 봉투를 반환합니다.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) *scrape.Response
}

// Handler v1 API 요청을 처리하고 수집 서비스를 연결하는 핸들러입니다.
type Handler struct {
	scraper Scraper
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(scraper Scraper) *Handler {
	if scraper == nil {
		panic(constants.PanicMsgScraperRequired)
	}

	return &Handler{scraper: scraper}
}

// log는 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
