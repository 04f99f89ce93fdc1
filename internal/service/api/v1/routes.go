// Package v1 /api/v1 경로 하위의 엔드포인트를 등록합니다.
//
// 주요 엔드포인트:
//   - POST /api/v1/scrape-product - 상품 URL 수집
//   - GET  /api/v1/health         - 헬스체크
package v1

import (
	"github.com/darkkaiser/zalando-scraper/internal/service/api/handler/system"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/middleware"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 설정합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, systemHandler *system.Handler) {
	v1Group := e.Group("/api/v1")

	v1Group.POST("/scrape-product", h.ScrapeProductHandler,
		middleware.ValidateContentType(echo.MIMEApplicationJSON),
	)

	v1Group.GET("/health", systemHandler.HealthCheckHandler)
}
