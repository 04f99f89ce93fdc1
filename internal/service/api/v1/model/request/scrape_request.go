package request

// ScrapeRequest 상품 수집 요청
type ScrapeRequest struct {
	// 수집할 Zalando 상품 페이지 URL
	URL string `json:"url" validate:"required,max=2048" korean:"상품 URL" example:"https://www.zalando.co.uk/nike-sportswear-air-max-trainers-ni112o0jf-a11.html"`
}
