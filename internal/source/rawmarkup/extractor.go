// Package rawmarkup 상품 페이지 원본 마크업에 직렬화된 쿼리 캐시에서 판매자/배송 정보와 재고 수량을 읽는 데이터 소스입니다.
//
// 추출 스키마와 무관하게 동작하며, 구조화 API가 사용하는 것과 같은 형식의 조회 키로 캐시 항목을 찾습니다.
package rawmarkup

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/tidwall/gjson"
)

const component = "source.rawmarkup"

// Fulfillment 변형 하나의 판매자와 배송 주체입니다. 라벨을 해석할 수 없으면 둘 다 nil입니다.
type Fulfillment struct {
	Merchant *string
	Shipper  *string
}

// Stock 첫 번째 변형의 실시간 재고 정보입니다. 단일 변형 상품의 병합에 사용합니다.
type Stock struct {
	SKU string

	// Quantity 캐시에 수량이 없으면 nil입니다.
	Quantity *int
}

// Result 원본 마크업 추출 결과입니다.
type Result struct {
	// Merchants SKU별 판매자/배송 정보
	Merchants map[string]Fulfillment

	Stock Stock
}

// Fulfillment sku의 판매자/배송 정보를 반환합니다.
func (r *Result) Fulfillment(sku string) (Fulfillment, bool) {
	if r == nil {
		return Fulfillment{}, false
	}
	f, ok := r.Merchants[sku]
	return f, ok
}

// Extractor 원본 마크업을 가져와 캐시를 해석합니다.
type Extractor struct {
	source MarkupSource
}

// NewExtractor 새로운 Extractor를 생성합니다.
func NewExtractor(source MarkupSource) *Extractor {
	return &Extractor{source: source}
}

// Extract 상품 페이지를 가져와 판매자/배송 정보와 재고를 추출합니다.
func (e *Extractor) Extract(ctx context.Context, id product.Identity) (*Result, error) {
	start := time.Now()

	html, err := e.source.Fetch(ctx, id.URL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.SourceUnavailable, "상품 페이지 원본 마크업을 가져오지 못했습니다")
	}

	result, err := Parse(html, id.ProductCode)
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"product_code": id.ProductCode,
		"merchants":    len(result.Merchants),
		"stock_sku":    result.Stock.SKU,
		"duration":     time.Since(start).String(),
	}).Debug("원본 마크업 추출 완료")

	return result, nil
}

// Parse 원본 마크업에서 productCode 상품의 판매자/배송 정보와 재고를 읽습니다.
//
//   - 캐시 구조를 찾을 수 없으면 MalformedResponse
//   - 조회 키가 캐시에 없으면 CacheKeyNotFound
func Parse(html, productCode string) (*Result, error) {
	cache, err := ParseCache(html)
	if err != nil {
		return nil, err
	}

	merchants, err := extractMerchants(cache, productCode)
	if err != nil {
		return nil, err
	}

	stock, err := extractStock(cache, productCode)
	if err != nil {
		return nil, err
	}

	return &Result{Merchants: merchants, Stock: stock}, nil
}

func extractMerchants(cache Cache, productCode string) (map[string]Fulfillment, error) {
	entry, err := cache.Lookup(MerchantKey(productCode))
	if err != nil {
		return nil, err
	}

	simples := gjson.GetBytes(entry, "data.product.simples")
	if !simples.IsArray() {
		return nil, apperrors.New(apperrors.MalformedResponse, "판매자 캐시 항목에 data.product.simples 목록이 없습니다")
	}

	merchants := make(map[string]Fulfillment)
	for _, simple := range simples.Array() {
		sku := simple.Get("sku").String()
		label := simple.Get("allOffers.0.fulfillmentLabel")
		if sku == "" || !label.IsObject() || len(label.Map()) == 0 {
			continue
		}
		merchants[sku] = MapFulfillment(label.Get("label").Array())
	}

	return merchants, nil
}

// MapFulfillment 판매 라벨 토큰 목록을 판매자/배송 주체로 변환합니다.
//
//   - 토큰 4개: 판매자 = 2번째 토큰, 배송 주체 = 3번째 토큰의 마지막 단어
//   - 토큰 2~3개: 판매자 = 배송 주체 = 2번째 토큰
//   - 그 외: 둘 다 nil
func MapFulfillment(tokens []gjson.Result) Fulfillment {
	switch len(tokens) {
	case 4:
		return Fulfillment{
			Merchant: textOf(tokens[1]),
			Shipper:  lastWordOf(tokens[2]),
		}

	case 2, 3:
		return Fulfillment{
			Merchant: textOf(tokens[1]),
			Shipper:  textOf(tokens[1]),
		}

	default:
		return Fulfillment{}
	}
}

func textOf(token gjson.Result) *string {
	text := token.Get("text")
	if !text.Exists() || text.Type == gjson.Null {
		return nil
	}
	s := text.String()
	return &s
}

// lastWordOf 토큰 텍스트의 마지막 단어를 반환합니다. 텍스트가 없으면 nil입니다.
func lastWordOf(token gjson.Result) *string {
	text := textOf(token)
	if text == nil {
		return nil
	}
	words := strings.Split(*text, " ")
	return &words[len(words)-1]
}

func extractStock(cache Cache, productCode string) (Stock, error) {
	entry, err := cache.Lookup(StockKey(productCode))
	if err != nil {
		return Stock{}, err
	}

	simple := gjson.GetBytes(entry, "data.product.simples.0")
	if !simple.IsObject() {
		return Stock{}, apperrors.New(apperrors.MalformedResponse, "재고 캐시 항목에 data.product.simples 항목이 없습니다")
	}

	stock := Stock{SKU: simple.Get("sku").String()}
	if q := simple.Get("allOffers.0.stock.quantity"); q.Type == gjson.Number {
		n := int(q.Int())
		stock.Quantity = &n
	}

	return stock, nil
}
