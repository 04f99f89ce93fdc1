package config

import (
	"time"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "zalando-scraper"

	// ServiceName API 응답(헬스 체크, 루트 엔드포인트)에 노출하는 서비스 이름입니다.
	ServiceName string = "Zalando Scraper API"

	// DefaultFilename 실행 인자로 경로가 주어지지 않을 때 탐색하는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 설정을 덮어쓸 환경 변수의 접두사입니다. (예: ZALANDO_API__LISTEN_PORT=9000)
	envPrefix = "ZALANDO_"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	API        APIConfig        `json:"api"`
	Structured StructuredConfig `json:"structured"`
	Rendered   RenderedConfig   `json:"rendered"`
	RawMarkup  RawMarkupConfig  `json:"raw_markup"`
	Reconcile  ReconcileConfig  `json:"reconcile"`
}

// APIConfig 상품 수집 REST API 서버 설정
type APIConfig struct {
	ListenPort         int           `json:"listen_port" validate:"min=1,max=65535"`
	CORS               CORSConfig    `json:"cors"`
	RateLimitPerMinute int           `json:"rate_limit_per_minute" validate:"min=1"`
	RequestTimeout     time.Duration `json:"request_timeout" validate:"min=1s"`

	// LimiterCleanupSpec 오래 사용되지 않은 IP별 요청 제한기를 정리하는 주기 (6필드 Cron 표현식)
	LimiterCleanupSpec string `json:"limiter_cleanup_spec" validate:"required"`
}

// CORSConfig 교차 출처 리소스 공유(CORS) 정책
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

// StructuredConfig 구조화 API(GraphQL) 소스 설정
type StructuredConfig struct {
	// SessionTTL 세션 쿠키를 재발급하기까지의 유효 시간
	SessionTTL      time.Duration `json:"session_ttl" validate:"min=1s"`
	RequestTimeout  time.Duration `json:"request_timeout" validate:"min=1s"`
	HomepageTimeout time.Duration `json:"homepage_timeout" validate:"min=1s"`
	MaxRetries      int           `json:"max_retries" validate:"min=0,max=10"`

	// RetryBaseDelay 재시도 대기 시간의 기준값 (attempt마다 2배씩 증가)
	RetryBaseDelay time.Duration `json:"retry_base_delay" validate:"min=0"`
}

// RenderedConfig 헤드리스 브라우저 렌더링 소스 설정
type RenderedConfig struct {
	Headless    bool          `json:"headless"`
	ExecPath    string        `json:"exec_path"`
	UserAgent   string        `json:"user_agent" validate:"required"`
	WaitTimeout time.Duration `json:"wait_timeout" validate:"min=1s"`
	PageTimeout time.Duration `json:"page_timeout" validate:"min=1s,gtefield=WaitTimeout"`

	// SchemaFile 추출 스키마(JSON) 파일 경로. 비어 있으면 내장 스키마를 사용합니다.
	SchemaFile string `json:"schema_file" validate:"omitempty,file"`

	Phrases PhrasesConfig `json:"phrases"`
}

// PhrasesConfig 사이즈 재고 문구 판별에 사용하는 로케일별 문구 (소문자 비교)
type PhrasesConfig struct {
	OutOfStock []string `json:"out_of_stock" validate:"min=1,dive,required"`
	Available  []string `json:"available" validate:"min=1,dive,required"`
	SingleItem []string `json:"single_item" validate:"dive,required"`

	// LongDistance 원거리 배송 안내 문구
	LongDistance []string `json:"long_distance" validate:"dive,required"`
}

// RawMarkupConfig 원본 마크업(임베디드 캐시) 소스 설정
type RawMarkupConfig struct {
	RequestTimeout time.Duration `json:"request_timeout" validate:"min=1s"`
	MaxRetries     int           `json:"max_retries" validate:"min=0,max=10"`
	MinRetryDelay  time.Duration `json:"min_retry_delay" validate:"min=0"`
	MaxRetryDelay  time.Duration `json:"max_retry_delay" validate:"gtefield=MinRetryDelay"`
}

// ReconcileConfig 소스 병합 정책
type ReconcileConfig struct {
	// PartialResults true이면 일부 소스가 실패해도 성공한 소스만으로 레코드를 만듭니다.
	// false(기본값)이면 어느 한 소스라도 실패하면 요청 전체가 실패합니다.
	PartialResults bool `json:"partial_results"`
}

// newDefaultConfig 설정 파일과 환경 변수가 없을 때 사용하는 기본 설정을 반환합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		API: APIConfig{
			ListenPort:         8001,
			CORS:               CORSConfig{AllowOrigins: []string{"*"}},
			RateLimitPerMinute: 60,
			RequestTimeout:     90 * time.Second,
			LimiterCleanupSpec: "0 */10 * * * *",
		},
		Structured: StructuredConfig{
			SessionTTL:      5 * time.Minute,
			RequestTimeout:  15 * time.Second,
			HomepageTimeout: 10 * time.Second,
			MaxRetries:      2,
			RetryBaseDelay:  time.Second,
		},
		Rendered: RenderedConfig{
			Headless:    true,
			UserAgent:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			WaitTimeout: 10 * time.Second,
			PageTimeout: 30 * time.Second,
			Phrases: PhrasesConfig{
				OutOfStock:   []string{"esaurito", "out of stock"},
				Available:    []string{"articoli disponibili", "available"},
				SingleItem:   []string{"1 articolo disponibile"},
				LongDistance: []string{"lunga distanza"},
			},
		},
		RawMarkup: RawMarkupConfig{
			RequestTimeout: 20 * time.Second,
			MaxRetries:     2,
			MinRetryDelay:  time.Second,
			MaxRetryDelay:  5 * time.Second,
		},
		Reconcile: ReconcileConfig{
			PartialResults: false,
		},
	}
}

// VerifyRecommendations 강제하지는 않지만 운영 안정성을 위해 권장되는 설정 준수 여부를 진단합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.ListenPort < 1024 {
		warnings = append(warnings, "시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다. 서버 구동 시 관리자 권한이 필요할 수 있습니다")
	}
	if !c.Rendered.Headless {
		warnings = append(warnings, "헤드리스 모드가 비활성화되어 있습니다. 서버 환경에서는 브라우저 창을 띄울 수 없어 렌더링이 실패할 수 있습니다")
	}
	if c.API.RequestTimeout < c.Rendered.PageTimeout {
		warnings = append(warnings, "API 요청 타임아웃(api.request_timeout)이 페이지 렌더링 타임아웃(rendered.page_timeout)보다 짧아 수집이 끝나기 전에 요청이 종료될 수 있습니다")
	}
	if c.Reconcile.PartialResults {
		warnings = append(warnings, "부분 결과 모드가 활성화되어 있습니다. 일부 소스가 실패해도 성공 응답이 반환됩니다")
	}

	return warnings
}
