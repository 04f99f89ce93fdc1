// Package middleware Echo 프레임워크를 위한 HTTP 미들웨어를 제공합니다.
//
// 제공되는 미들웨어:
//
//   - HTTPLogger: HTTP 요청/응답 로깅 (민감 정보 자동 마스킹)
//   - RateLimit: IP 기반 분당 요청 수 제한
//   - PanicRecovery: 패닉 복구 및 에러 로깅
//   - RequestID: UUID 기반 요청 식별자 부여
//   - ValidateContentType: 요청 Content-Type 검증
//   - Logger: Echo 로거를 애플리케이션 로거로 연결
//
// 사용 예시:
//
//	e := echo.New()
//	e.Use(middleware.PanicRecovery())
//	e.Use(middleware.RequestID())
//	e.Use(middleware.HTTPLogger())
//	e.Use(middleware.NewRateLimiter(60).Middleware())
package middleware
