// Package scheduler 주기적으로 실행해야 하는 내부 유지보수 작업(요청 제한기 정리 등)을
// Cron 스케줄에 맞춰 실행하는 서비스를 제공합니다.
package scheduler

import (
	"context"
	"sync"

	"github.com/darkkaiser/zalando-scraper/pkg/cronx"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// Job Cron 스케줄에 따라 실행할 작업 하나입니다.
type Job struct {
	// Name 로그에 표시할 작업 이름
	Name string

	// Spec 6필드 Cron 표현식 (초 분 시 일 월 요일)
	Spec string

	Run func()
}

// Scheduler 등록된 작업들을 Cron 스케줄에 맞춰 실행하는 서비스입니다.
type Scheduler struct {
	jobs []Job

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(jobs ...Job) *Scheduler {
	for _, j := range jobs {
		if j.Run == nil {
			panic("Job.Run은 필수입니다: " + j.Name)
		}
	}

	return &Scheduler{jobs: jobs}
}

// Start 스케줄러를 시작하고 작업들을 Cron 엔진에 등록합니다.
// 잘못된 Cron 표현식이 하나라도 있으면 스케줄러를 시작하지 않고 에러를 반환합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드)
	// - Recover: 작업에서 발생한 panic이 다른 작업에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	for _, j := range s.jobs {
		if _, err := c.AddFunc(j.Spec, j.Run); err != nil {
			serviceStopWG.Done()

			err = NewErrInvalidCronSpec(j.Name, j.Spec, err)
			applog.WithComponentAndFields(component, applog.Fields{
				"job":   j.Name,
				"spec":  j.Spec,
				"error": err,
			}).Error("작업 등록 실패: Scheduler 서비스를 시작할 수 없습니다")

			return err
		}
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_schedules": len(s.cron.Entries()),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.stop()
	}()

	return nil
}

// stop 실행 중인 스케줄러를 중지하고 실행 중인 작업이 끝날 때까지 기다립니다.
func (s *Scheduler) stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	<-s.cron.Stop().Done()

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}
