package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source 상품 정보를 제공하는 데이터 소스의 식별자입니다.
type Source string

const (
	// SourceAPI 구조화 API(GraphQL)
	SourceAPI Source = "api"

	// SourceCrawl 헤드리스 브라우저로 렌더링한 페이지
	SourceCrawl Source = "crawl"

	// SourceRaw 페이지 원본 마크업에 포함된 임베디드 캐시
	SourceRaw Source = "raw"
)

// AllSources 병합 결과와 메타데이터에서 사용하는 소스의 고정 순서입니다.
var AllSources = []Source{SourceAPI, SourceCrawl, SourceRaw}

// 레코드 플래그
const (
	// FlagSingleVariant 사이즈 정보가 없어 단일 변형("One Size")을 합성했습니다.
	FlagSingleVariant = "single_variant"

	// FlagPartial 일부 소스 없이 병합되었습니다.
	FlagPartial = "partial"
)

// OneSizeLabel 사이즈를 구분할 수 없는 상품에 합성하는 변형의 사이즈 이름입니다.
const OneSizeLabel = "One Size"

// Provenance 레코드 병합에 기여한 소스와 병합 시각입니다. 응답 메타데이터로만 사용됩니다.
type Provenance struct {
	MergedAt    time.Time `json:"merged_at"`
	DataSources []Source  `json:"data_sources"`
}

// Contains 소스 s가 병합에 기여했는지 확인합니다.
func (p Provenance) Contains(s Source) bool {
	for _, src := range p.DataSources {
		if src == s {
			return true
		}
	}
	return false
}

// Variant 구매 가능한 사이즈(옵션) 하나입니다. 레코드 안에서 SKU는 유일합니다.
type Variant struct {
	SKU  string `json:"sku"`
	Size string `json:"size"`

	// Note 사이즈 선택 위젯에 표시된 안내 문구 (예: "2 articoli disponibili")
	Note string `json:"note,omitempty"`

	Availability Availability `json:"availability"`

	// Quantity 재고 수량. 정확한 수량("0", "2")이거나 기호 값(">=2")입니다.
	Quantity string `json:"stock_quantity,omitempty"`

	Price    *decimal.Decimal `json:"price,omitempty"`
	Currency string           `json:"currency,omitempty"`

	GTIN       string `json:"gtin,omitempty"`
	MerchantID string `json:"merchant_id,omitempty"`

	// Merchant, Shipper 판매자와 배송 주체 이름. 라벨을 해석할 수 없으면 nil입니다.
	Merchant *string `json:"merchant"`
	Shipper  *string `json:"shipper"`

	LongDistance bool `json:"long_distance_shipping"`
}

// SizeInfo 이전 버전 응답과의 호환을 위해 유지하는 단순 사이즈 목록 항목입니다.
type SizeInfo struct {
	Size          string       `json:"size"`
	Price         string       `json:"price,omitempty"`
	Availability  Availability `json:"availability"`
	StockQuantity *int         `json:"stock_quantity,omitempty"`
	SKU           string       `json:"sku,omitempty"`
}

// Offer 페이지의 구조화 데이터(JSON-LD)에 포함된 SKU별 판매 정보입니다.
type Offer struct {
	SKU      string           `json:"sku"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Currency string           `json:"currency,omitempty"`

	// Availability schema.org 접두어를 제거한 값 (예: InStock)
	Availability string `json:"availability,omitempty"`

	URL string `json:"url,omitempty"`
}

// LinkedProduct 구조화 데이터(JSON-LD)에서 읽은 상품 기본 정보입니다.
type LinkedProduct struct {
	Name        string `json:"name,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	SKU         string `json:"sku,omitempty"`
}

// AvailabilitySummary 구조화 데이터 판매 정보의 재고 통계입니다.
type AvailabilitySummary struct {
	Total      int `json:"total_variants"`
	Available  int `json:"available_variants"`
	OutOfStock int `json:"out_of_stock_variants"`

	// Rate 재고 보유 비율 (예: "66.7%")
	Rate string `json:"availability_rate"`
}

// Record 세 소스를 병합한 상품 정보입니다.
// 병합 과정에서만 수정되며 응답으로 직렬화된 이후에는 변경하지 않습니다.
type Record struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	SKU                   string     `json:"sku"`
	Brand                 string     `json:"brand"`
	ModelNumber           string     `json:"model_number,omitempty"`
	GTIN                  string     `json:"gtin,omitempty"`
	Price                 PriceBlock `json:"price"`
	PackshotImage         string     `json:"packshot_image,omitempty"`
	Silhouette            string     `json:"silhouette,omitempty"`
	NavigationTargetGroup string     `json:"navigation_target_group,omitempty"`
	URL                   string     `json:"url"`

	Variants []Variant `json:"variants"`

	// Highlight 상품 상세 페이지의 강조 문구
	Highlight string `json:"product_highlight,omitempty"`

	Flags []string `json:"flags,omitempty"`

	LegacySizes         []SizeInfo           `json:"available_sizes,omitempty"`
	LinkedProduct       *LinkedProduct       `json:"linked_product,omitempty"`
	Offers              []Offer              `json:"offers,omitempty"`
	AvailabilitySummary *AvailabilitySummary `json:"availability_summary,omitempty"`

	Provenance Provenance `json:"metadata"`
}

// HasFlag 레코드에 flag가 설정되어 있는지 확인합니다.
func (r *Record) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

