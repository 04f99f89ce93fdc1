package constants

import "time"

// HTTP 서버 기본값 상수입니다.
const (
	// DefaultRequestTimeout 요청 처리 타임아웃이 설정되지 않았을 때 적용하는 값입니다.
	// 세 데이터 소스의 렌더링과 재시도를 모두 기다릴 수 있어야 합니다.
	DefaultRequestTimeout = 90 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기입니다. 수집 요청 본문은 URL 하나뿐입니다.
	DefaultMaxBodySize = "16K"

	// DefaultReadHeaderTimeout 요청 헤더를 읽는 최대 시간입니다. (Slowloris 방어)
	DefaultReadHeaderTimeout = 10 * time.Second

	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한. 요청 처리 타임아웃보다 길어야 응답이 잘리지 않습니다.
	DefaultWriteTimeout = DefaultRequestTimeout + 10*time.Second

	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 시 진행 중인 요청을 기다리는 최대 시간입니다.
	DefaultShutdownTimeout = 5 * time.Second
)

// 요청 제한 기본값 상수입니다.
const (
	// DefaultRateLimitPerMinute IP별 분당 허용 요청 수
	DefaultRateLimitPerMinute = 60

	// DefaultLimiterIdleTTL 이 시간 동안 요청이 없던 IP의 요청 제한기는 정리 대상이 됩니다.
	DefaultLimiterIdleTTL = 10 * time.Minute
)

// 헬스체크 상태 값입니다.
const (
	HealthStatusHealthy = "healthy"
)
