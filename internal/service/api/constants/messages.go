package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 일반 HTTP 에러 (상태 코드 순)
	// ------------------------------------------------------------------------------------------------

	// 400 Bad Request
	ErrMsgBadRequestInvalidBody = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"

	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 413 Request Entity Too Large
	ErrMsgRequestEntityTooLarge = "요청 본문이 너무 큽니다"

	// 415 Unsupported Media Type
	ErrMsgUnsupportedMediaType = "지원하지 않는 Content-Type 형식입니다"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"
)

// 시스템 엔드포인트 응답 메시지입니다.
const (
	// MsgWelcomeFormat 루트 엔드포인트 환영 메시지 (%s: 서비스 이름)
	MsgWelcomeFormat = "Welcome to %s"

	// DocsPath API 문서(Swagger UI) 경로
	DocsPath = "/swagger/index.html"
)

// 서비스 구성 시 발생할 수 있는 패닉 메시지 상수입니다.
const (
	PanicMsgAppConfigRequired = "AppConfig는 필수입니다"
	PanicMsgScraperRequired   = "Scraper는 필수입니다"

	// PanicMsgRateLimitInvalid 패닉 메시지: 분당 요청 수 설정 오류
	PanicMsgRateLimitInvalid = "RateLimit: 분당 요청 수는 양수여야 합니다 (현재값: %d)"
)
