// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 환영 메시지, 헬스체크, 버전 정보 등 시스템 수준의 API를 처리합니다.
package system

import (
	"fmt"
	"net/http"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/pkg/version"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/constants"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/model/system"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러 (환영 메시지, 헬스체크, 버전 정보)
type Handler struct {
	buildInfo version.Info

	// uptime 서버 가동 시간(초)을 반환합니다.
	uptime func() int64
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(buildInfo version.Info) *Handler {
	return &Handler{
		buildInfo: buildInfo,
		uptime:    version.Uptime,
	}
}

// RootHandler godoc
// @Summary 환영 메시지
// @Description 서비스 이름과 버전, API 문서 경로를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.WelcomeResponse "환영 메시지"
// @Router / [get]
func (h *Handler) RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.WelcomeResponse{
		Message: fmt.Sprintf(constants.MsgWelcomeFormat, config.ServiceName),
		Version: h.buildInfo.Version,
		Docs:    constants.DocsPath,
	})
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버가 요청을 처리할 수 있는 상태인지 확인합니다.
// @Description 모니터링 시스템과 컨테이너 오케스트레이터의 liveness 검사에 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
// @Router /api/v1/health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  c.Path(),
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:  constants.HealthStatusHealthy,
		Service: config.ServiceName,
		Version: h.buildInfo.Version,
		Uptime:  h.uptime(),
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}
