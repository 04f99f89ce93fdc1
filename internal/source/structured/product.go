package structured

import (
	"context"
	"encoding/json"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/tidwall/gjson"
)

const (
	cardNodePath = "0.data.product.family.products.edges.0.node"
	skuNodePath  = "0.data.product"
)

// cardRequiredKeys 상품 카드 노드에 반드시 있어야 하는 키입니다.
var cardRequiredKeys = []string{"id", "name", "sku", "brand.name", "displayPrice"}

// Product 구조화 API의 상품 카드와 SKU 응답을 정규화한 결과입니다.
type Product struct {
	ID                    string
	Name                  string
	SKU                   string
	Brand                 string
	ModelNumber           string
	GTIN                  string
	Price                 product.PriceBlock
	PackshotImage         string
	Silhouette            string
	NavigationTargetGroup string

	// Simples SKU 응답의 변형 목록 (원본 순서 유지)
	Simples []Simple
}

// Simple 구조화 API가 반환한 변형(사이즈) 하나입니다.
type Simple struct {
	SKU        string
	Size       string
	GTINs      []string
	MerchantID string

	// Raw 원본 JSON
	Raw json.RawMessage
}

// GTIN 첫 번째 GTIN을 반환합니다.
func (s Simple) GTIN() string {
	if len(s.GTINs) == 0 {
		return ""
	}
	return s.GTINs[0]
}

// FetchProduct 상품 카드와 SKU 쿼리를 차례로 호출해 정규화된 상품 정보를 반환합니다.
func (c *Client) FetchProduct(ctx context.Context, id product.Identity) (*Product, error) {
	cardBody, err := c.Post(ctx, CardQuery(id))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.UnderlyingType(err), "상품 카드 조회 실패")
	}
	skuBody, err := c.Post(ctx, SKUQuery(id))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.UnderlyingType(err), "상품 SKU 조회 실패")
	}

	p, err := Normalize(cardBody, skuBody)
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"product_code": id.ProductCode,
		"sku":          p.SKU,
		"simples":      len(p.Simples),
		"price_facets": len(p.Price.Facets),
	}).Debug("구조화 API 상품 정보 정규화 완료")

	return p, nil
}

// Normalize 상품 카드 응답과 SKU 응답을 하나의 Product로 정규화합니다.
// 필수 키가 없으면 MalformedResponse 에러를 반환합니다.
func Normalize(cardBody, skuBody []byte) (*Product, error) {
	card, err := lookupNode(cardBody, cardNodePath, "상품 카드")
	if err != nil {
		return nil, err
	}
	for _, key := range cardRequiredKeys {
		if !card.Get(key).Exists() {
			return nil, apperrors.Newf(apperrors.MalformedResponse, "상품 카드 응답에 필수 키(%s)가 없습니다", key)
		}
	}

	skuNode, err := lookupNode(skuBody, skuNodePath, "상품 SKU")
	if err != nil {
		return nil, err
	}
	if !skuNode.Get("sku").Exists() {
		return nil, apperrors.New(apperrors.MalformedResponse, "상품 SKU 응답에 필수 키(sku)가 없습니다")
	}

	price, err := normalizePrice(card.Get("displayPrice"))
	if err != nil {
		return nil, err
	}

	p := &Product{
		ID:                    card.Get("id").String(),
		Name:                  card.Get("name").String(),
		SKU:                   card.Get("sku").String(),
		Brand:                 card.Get("brand.name").String(),
		ModelNumber:           skuNode.Get("modelNumber").String(),
		Price:                 price,
		PackshotImage:         card.Get("packshotImage.uri").String(),
		Silhouette:            card.Get("silhouette").String(),
		NavigationTargetGroup: card.Get("navigationTargetGroup").String(),
		Simples:               normalizeSimples(skuNode.Get("simples")),
	}
	if len(p.Simples) > 0 {
		p.GTIN = p.Simples[0].GTIN()
	}

	return p, nil
}

// lookupNode 응답 본문에서 path 위치의 객체를 찾습니다.
func lookupNode(body []byte, path, name string) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, apperrors.Newf(apperrors.MalformedResponse, "%s 응답이 올바른 JSON이 아닙니다", name)
	}

	node := gjson.GetBytes(body, path)
	if !node.IsObject() {
		return gjson.Result{}, apperrors.Newf(apperrors.MalformedResponse, "%s 응답에 노드(%s)가 없습니다", name, path)
	}

	return node, nil
}

// normalizePrice displayPrice의 각 금액 항목을 최소 화폐 단위에서 소수 금액으로 한 번만 변환합니다.
//
//   - 'amount'를 가진 객체 항목: 키 이름 그대로 항목 생성
//   - trackingCurrentAmount: tracking 항목
//   - trackingDiscountAmount: tracking_discount 항목
//
// 숫자로 해석할 수 없는 금액은 건너뜁니다.
func normalizePrice(displayPrice gjson.Result) (product.PriceBlock, error) {
	if !displayPrice.IsObject() {
		return product.PriceBlock{}, apperrors.New(apperrors.MalformedResponse, "상품 카드 응답의 displayPrice가 객체가 아닙니다")
	}

	block := product.PriceBlock{Facets: make(map[string]product.PriceFacet)}

	displayPrice.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.IsObject():
			amount := value.Get("amount")
			if amount.Type != gjson.Number {
				return true
			}
			d, err := product.ParseMinorUnits(amount.Raw)
			if err != nil {
				return true
			}
			block.Facets[key.String()] = product.PriceFacet{Amount: d, Currency: value.Get("currency").String()}

		case key.String() == "trackingCurrentAmount" && value.Type == gjson.Number:
			if d, err := product.ParseMinorUnits(value.Raw); err == nil {
				block.Facets[product.FacetTracking] = product.PriceFacet{Amount: d}
			}

		case key.String() == "trackingDiscountAmount" && value.Type == gjson.Number:
			if d, err := product.ParseMinorUnits(value.Raw); err == nil {
				block.Facets[product.FacetTrackingDiscount] = product.PriceFacet{Amount: d}
			}
		}
		return true
	})

	// 추적 금액에는 통화가 없으므로 다른 항목의 통화를 따릅니다.
	if currency := block.Currency(); currency != "" {
		for _, name := range []string{product.FacetTracking, product.FacetTrackingDiscount} {
			if f, ok := block.Facets[name]; ok {
				f.Currency = currency
				block.Facets[name] = f
			}
		}
	}

	block.DiscountPercentage = product.DiscountPercentage(block.Amount(product.FacetTracking), block.Amount(product.FacetTrackingDiscount))

	return block, nil
}

func normalizeSimples(simples gjson.Result) []Simple {
	if !simples.IsArray() {
		return nil
	}

	var out []Simple
	simples.ForEach(func(_, s gjson.Result) bool {
		if !s.IsObject() {
			return true
		}

		var gtins []string
		for _, g := range s.Get("gtins").Array() {
			if g.String() != "" {
				gtins = append(gtins, g.String())
			}
		}

		merchantID := s.Get("offer.merchant.id").String()
		if merchantID == "" {
			merchantID = s.Get("allOffers.0.merchant.id").String()
		}

		out = append(out, Simple{
			SKU:        s.Get("sku").String(),
			Size:       s.Get("size").String(),
			GTINs:      gtins,
			MerchantID: merchantID,
			Raw:        json.RawMessage(s.Raw),
		})
		return true
	})

	return out
}
