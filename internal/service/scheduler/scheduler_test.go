package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("서비스가 제한 시간 안에 종료되지 않았습니다")
	}
}

func TestNewService_RunRequired(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewService(Job{Name: "empty", Spec: "@every 1s"}) })
}

func TestScheduler_RunsJob(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := NewService(Job{Name: "tick", Spec: "* * * * * *", Run: func() { calls.Add(1) }})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	waitTimeout(t, &wg)

	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	assert.False(t, s.running)
	assert.Nil(t, s.cron)
}

func TestScheduler_DuplicateStart(t *testing.T) {
	t.Parallel()

	s := NewService(Job{Name: "noop", Spec: "0 0 * * * *", Run: func() {}})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	// 이미 실행 중이면 Done()을 호출하고 즉시 반환
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	cancel()
	waitTimeout(t, &wg)
}

func TestScheduler_InvalidCronSpec(t *testing.T) {
	t.Parallel()

	s := NewService(
		Job{Name: "ok", Spec: "0 */10 * * * *", Run: func() {}},
		Job{Name: "broken", Spec: "*/10 * * * *", Run: func() {}},
	)

	var wg sync.WaitGroup
	wg.Add(1)
	err := s.Start(context.Background(), &wg)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Contains(t, err.Error(), "broken")
	waitTimeout(t, &wg)
	assert.False(t, s.running)
}
