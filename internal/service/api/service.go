package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/zalando-scraper/docs"
	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/pkg/version"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/constants"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/handler/system"
	appmiddleware "github.com/darkkaiser/zalando-scraper/internal/service/api/middleware"
	v1 "github.com/darkkaiser/zalando-scraper/internal/service/api/v1"
	v1handler "github.com/darkkaiser/zalando-scraper/internal/service/api/v1/handler"
	"github.com/darkkaiser/zalando-scraper/internal/service/scheduler"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service 상품 수집 API 서버의 생명주기를 관리하는 서비스입니다.
//
// 서비스는 고루틴으로 실행되며, context를 통해 종료 신호를 받습니다.
// Start() 메서드로 시작하고, context 취소로 종료됩니다.
type Service struct {
	appConfig *config.AppConfig

	scraper v1handler.Scraper

	buildInfo version.Info

	// limiter IP별 요청 제한기. 유휴 항목 정리 작업과 공유합니다.
	limiter *appmiddleware.RateLimiter

	// listening 서버가 바인딩한 주소를 한 번 전달합니다.
	listening chan net.Addr

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, scraper v1handler.Scraper, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if scraper == nil {
		panic(constants.PanicMsgScraperRequired)
	}

	return &Service{
		appConfig: appConfig,

		scraper: scraper,

		buildInfo: buildInfo,

		limiter: appmiddleware.NewRateLimiter(appConfig.API.RateLimitPerMinute),

		listening: make(chan net.Addr, 1),
	}
}

// LimiterCleanupJob 오래 요청이 없던 IP의 요청 제한기를 정리하는 예약 작업을 반환합니다.
func (s *Service) LimiterCleanupJob() scheduler.Job {
	return scheduler.Job{
		Name: "api.limiter_cleanup",
		Spec: s.appConfig.API.LimiterCleanupSpec,
		Run: func() {
			s.limiter.Cleanup(constants.DefaultLimiterIdleTTL)
		},
	}
}

// Listening 서버가 포트 바인딩을 마치면 실제 주소를 한 번 전달하는 채널을 반환합니다.
func (s *Service) Listening() <-chan net.Addr {
	return s.listening
}

// Start API 서비스를 시작합니다.
//
// 서비스는 별도의 고루틴에서 실행되며, 다음 작업을 수행합니다:
//  1. Echo 서버 설정 (Handler, 미들웨어, 라우트)
//  2. HTTP 서버 시작 (별도 고루틴)
//  3. Shutdown 신호 대기 후 Graceful Shutdown
//
// Note: 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.scraper == nil {
		defer serviceStopWG.Done()
		return ErrScraperNotInitialized
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 핸들러와 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.NewHandler(s.buildInfo)
	v1Handler := v1handler.NewHandler(s.scraper)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:          s.appConfig.Debug,
		AllowOrigins:   s.appConfig.API.CORS.AllowOrigins,
		RequestTimeout: s.appConfig.API.RequestTimeout,
		RateLimiter:    s.limiter,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler, systemHandler)

	return e
}

// startHTTPServer HTTP 서버를 시작합니다. 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.API.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Info(constants.LogMsgServiceHTTPServerStarting)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		s.handleServerError(err)
		return
	}
	e.Listener = ln

	select {
	case s.listening <- ln.Addr():
	default:
	}

	s.handleServerError(e.Start(""))
}

// handleServerError HTTP 서버 실행 중 발생한 에러를 처리합니다.
//
//   - nil, http.ErrServerClosed: 정상 종료
//   - 그 외: Error 레벨 로깅 (포트 바인딩 실패 등)
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
//
// Note: 이 함수는 서비스가 완전히 종료될 때까지 블로킹됩니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// HTTP 서버가 예기치 않게 종료됨 (포트 바인딩 실패 등)
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
