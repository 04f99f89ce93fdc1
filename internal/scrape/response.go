package scrape

import (
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/product"
)

// 요청 실패 시 응답 error 필드에 사용하는 메시지 접두사입니다.
const (
	ErrMsgInvalidURL = "Invalid Zalando product URL"

	errPrefixAPI        = "API scraper error: "
	errPrefixCrawl      = "Crawler error: "
	errPrefixRaw        = "Raw markup error: "
	errPrefixUnexpected = "Unexpected error: "
)

// Response 상품 수집 요청 하나의 결과 봉투입니다.
//
// 성공 시 Data에 병합된 레코드가, 실패 시 Error에 사람이 읽을 수 있는 원인이 담깁니다.
// URL 해석에 실패한 요청은 Metadata가 없습니다.
type Response struct {
	Success  bool            `json:"success" example:"true"`
	Data     *product.Record `json:"data,omitempty"`
	Error    string          `json:"error,omitempty" example:"Crawler error: 상품 페이지를 렌더링할 수 없습니다"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}

// Metadata 요청 대상 상품과 데이터 소스 사용 내역입니다.
type Metadata struct {
	ProductCode string `json:"product_code" example:"A9182F001-T11"`
	Domain      string `json:"domain" example:"zalando.it"`
	Language    string `json:"language" example:"en-US"`

	// SourcesUsed 소스별로 에러 없이 결과를 반환했는지 여부
	SourcesUsed SourcesUsed `json:"sources_used"`

	// MergedAt 레코드 병합 시각. 병합하지 않은 요청은 비어 있습니다.
	MergedAt *time.Time `json:"merged_at,omitempty"`

	// DataSources 레코드에 비어 있지 않은 정보를 제공한 소스 목록 (api, crawl, raw 순)
	DataSources []product.Source `json:"data_sources"`

	// SourceErrors 실패한 소스별 에러 메시지
	SourceErrors map[product.Source]string `json:"source_errors,omitempty"`
}

// SourcesUsed 소스별 성공 여부
type SourcesUsed struct {
	API   bool `json:"api"`
	Crawl bool `json:"crawl"`
	Raw   bool `json:"raw"`
}

func failure(message string, md *Metadata) *Response {
	return &Response{
		Success:  false,
		Error:    message,
		Metadata: md,
	}
}

func newMetadata(id product.Identity) *Metadata {
	return &Metadata{
		ProductCode: id.ProductCode,
		Domain:      id.Domain,
		Language:    id.Language,
		DataSources: []product.Source{},
	}
}

// errorPrefix 소스별 실패 메시지 접두사
func errorPrefix(s product.Source) string {
	switch s {
	case product.SourceAPI:
		return errPrefixAPI
	case product.SourceCrawl:
		return errPrefixCrawl
	case product.SourceRaw:
		return errPrefixRaw
	default:
		return errPrefixUnexpected
	}
}
