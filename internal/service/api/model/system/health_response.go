package system

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	// 전체 헬스체크 상태: healthy, unhealthy
	Status string `json:"status" example:"healthy"`
	// 서비스 이름
	Service string `json:"service" example:"Zalando Scraper API"`
	// 애플리케이션 버전
	Version string `json:"version" example:"abc1234"`
	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`
}
