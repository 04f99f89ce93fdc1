package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/pkg/version"
	"github.com/darkkaiser/zalando-scraper/internal/scrape"
	"github.com/darkkaiser/zalando-scraper/internal/service/api"
	"github.com/darkkaiser/zalando-scraper/internal/service/contract"
	"github.com/darkkaiser/zalando-scraper/internal/service/scheduler"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
)

// @title Zalando Scraper API
// @version 1.0
// @description Zalando 상품 페이지를 세 데이터 소스에서 수집하여 하나의 상품 레코드로 병합하는 API 서버입니다.
// @description
// @description ## 데이터 소스
// @description - **api**: 스토어프론트 GraphQL API (가격, 변형별 재고)
// @description - **crawl**: 헤드리스 브라우저로 렌더링한 상품 페이지 (하이라이트, 사이즈 목록)
// @description - **raw**: 페이지 원본 마크업의 임베디드 캐시 (판매자 오퍼, 재고 수량)

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @BasePath /

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const (
	banner = `
  _____     _              _         ____                                
 |__  /__ _| | __ _ _ __ __| | ___   / ___|  ___ _ __ __ _ _ __   ___ _ __ 
   / // _' | |/ _' | '_ \ / _' |/ _ \  \___ \ / __| '__/ _' | '_ \ / _ \ '__|
  / /| (_| | | (_| | | | | (_| | (_) |  ___) | (__| | | (_| | |_) |  __/ |   
 /____\__,_|_|\__,_|_| |_|\__,_|\___/  |____/ \___|_|  \__,_| .__/ \___|_|   
                                                           |_|   %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	fmt.Printf(banner, Version)

	buildInfo := version.Info{
		Version:     Version,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
	version.Set(buildInfo)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": version.Get().String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 서비스를 생성하고 초기화한다.
	scrapeService, err := scrape.New(appConfig)
	if err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error": err,
		}).Error("수집 서비스 초기화 실패")
		os.Exit(1)
	}

	apiService := api.NewService(appConfig, scrapeService, version.Get())
	schedulerService := scheduler.NewService(apiService.LimiterCleanupJob())

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []contract.Service{schedulerService, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			appLogCloser.Close()
			os.Exit(1)
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 신호 수신: 모든 서비스를 중지합니다")
	cancel()
	serviceStopWG.Wait()
}
