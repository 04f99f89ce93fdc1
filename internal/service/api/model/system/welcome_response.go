package system

// WelcomeResponse 루트 엔드포인트 응답
type WelcomeResponse struct {
	Message string `json:"message" example:"Welcome to Zalando Scraper API"`
	Version string `json:"version" example:"abc1234"`
	// API 문서 경로
	Docs string `json:"docs" example:"/swagger/index.html"`
}
