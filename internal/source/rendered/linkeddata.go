package rendered

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var scriptTagPattern = regexp.MustCompile(`</?script[^>]*>`)

// LinkedData 페이지의 구조화 데이터(JSON-LD)에서 읽은 상품 정보와 SKU별 판매 정보입니다.
type LinkedData struct {
	Product product.LinkedProduct
	Offers  []product.Offer
	Summary product.AvailabilitySummary
}

// ParseLinkedData JSON-LD script 요소(태그 포함 가능)를 해석합니다.
// 내용이 비어 있으면 nil을 반환하고, 올바른 JSON이 아니면 MalformedResponse 에러를 반환합니다.
func ParseLinkedData(script string) (*LinkedData, error) {
	raw := strings.TrimSpace(scriptTagPattern.ReplaceAllString(script, ""))
	if raw == "" {
		return nil, nil
	}
	if !gjson.Valid(raw) {
		return nil, apperrors.New(apperrors.MalformedResponse, "JSON-LD 데이터가 올바른 JSON이 아닙니다")
	}

	node := productNode(gjson.Parse(raw))
	if !node.IsObject() {
		return nil, apperrors.New(apperrors.MalformedResponse, "JSON-LD 데이터에 상품 객체가 없습니다")
	}

	ld := &LinkedData{
		Product: product.LinkedProduct{
			Name:        node.Get("name").String(),
			Description: strings.TrimSpace(node.Get("description").String()),
			Color:       node.Get("color").String(),
			SKU:         node.Get("sku").String(),
		},
	}

	// brand는 {"@type":"Brand","name":"..."} 객체이거나 문자열입니다.
	if brand := node.Get("brand"); brand.IsObject() {
		ld.Product.Brand = brand.Get("name").String()
	} else {
		ld.Product.Brand = brand.String()
	}

	offers := node.Get("offers")
	if offers.IsObject() {
		ld.Offers = append(ld.Offers, parseOffer(offers))
	} else {
		for _, o := range offers.Array() {
			if o.IsObject() {
				ld.Offers = append(ld.Offers, parseOffer(o))
			}
		}
	}

	ld.Summary = summarize(ld.Offers)

	return ld, nil
}

// productNode 최상위가 배열이거나 @graph를 사용하는 경우 @type이 Product인 객체를 찾습니다.
func productNode(root gjson.Result) gjson.Result {
	var candidates []gjson.Result
	switch {
	case root.IsArray():
		candidates = root.Array()
	case root.Get("@graph").IsArray():
		candidates = root.Get("@graph").Array()
	default:
		return root
	}

	for _, c := range candidates {
		if strings.EqualFold(c.Get("@type").String(), "Product") {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return gjson.Result{}
}

func parseOffer(o gjson.Result) product.Offer {
	offer := product.Offer{
		SKU:          o.Get("sku").String(),
		Currency:     o.Get("priceCurrency").String(),
		Availability: product.StripSchemaOrg(o.Get("availability").String()),
		URL:          o.Get("url").String(),
	}

	if p := o.Get("price"); p.Exists() && p.String() != "" {
		if d, err := decimal.NewFromString(p.String()); err == nil {
			offer.Price = &d
		}
	}

	return offer
}

// summarize 판매 정보의 재고 통계를 계산합니다. 비율은 소수 첫째 자리까지 표시합니다.
func summarize(offers []product.Offer) product.AvailabilitySummary {
	s := product.AvailabilitySummary{Total: len(offers), Rate: "0%"}
	for _, o := range offers {
		switch product.AvailabilityFromLinkedData(o.Availability) {
		case product.InStock:
			s.Available++
		case product.OutOfStock:
			s.OutOfStock++
		}
	}
	if s.Total > 0 {
		s.Rate = fmt.Sprintf("%.1f%%", float64(s.Available)/float64(s.Total)*100)
	}
	return s
}

// EnrichPrices 구조화 데이터 판매 정보로 사이즈별 가격을 채웁니다.
//
//   - 품절 사이즈: 0
//   - 판매 정보에 같은 SKU가 있으면 그 가격 (가격이 없으면 nil)
//   - 판매 정보에 SKU 자체가 없으면 첫 번째 판매 정보의 가격
//
// 판매 정보가 없으면 아무것도 바꾸지 않습니다.
func EnrichPrices(sizes []ModernSize, offers []product.Offer) {
	if len(offers) == 0 {
		return
	}

	bySKU := make(map[string]product.Offer, len(offers))
	for _, o := range offers {
		if o.SKU == "" {
			continue
		}
		if prev, ok := bySKU[o.SKU]; ok && prev.Price != nil {
			continue
		}
		bySKU[o.SKU] = o
	}

	for i := range sizes {
		s := &sizes[i]

		if s.Availability == ModernOutOfStock {
			zero := decimal.Zero
			s.Price = &zero
			s.Currency = offers[0].Currency
			continue
		}

		offer, ok := bySKU[s.SKU]
		if !ok {
			offer = offers[0]
		}
		s.Price = offer.Price
		s.Currency = offer.Currency
	}
}
