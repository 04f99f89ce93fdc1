// Package contract 서비스 간에 공유하는 인터페이스를 정의합니다.
package contract

import (
	"context"
	"sync"
)

// Service 애플리케이션 생명주기 동안 백그라운드에서 실행되는 서비스입니다.
//
// Start는 즉시 반환해야 하며, serviceStopCtx가 취소되면 정리 작업을 마친 뒤
// serviceStopWG.Done()을 정확히 한 번 호출해야 합니다. 시작에 실패한 경우에도 Done()을 호출합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
