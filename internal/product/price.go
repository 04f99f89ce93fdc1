package product

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// 가격 항목 이름
const (
	FacetCurrent          = "current"
	FacetOriginal         = "original"
	FacetPromotional      = "promotional"
	FacetTracking         = "tracking"
	FacetTrackingDiscount = "tracking_discount"
)

// minorUnitExponent 소스 가격은 최소 화폐 단위(센트)의 정수이므로 소수점 두 자리를 이동합니다.
const minorUnitExponent = -2

// PriceFacet 이름이 붙은 가격 항목 하나입니다.
type PriceFacet struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// PriceBlock 상품의 가격 항목 모음과 파생 값인 할인율입니다.
// Facets에 들어 있는 금액은 이미 정규화된 값이며 다시 나누지 않습니다.
type PriceBlock struct {
	Facets             map[string]PriceFacet `json:"facets"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
}

// FromMinorUnits 최소 화폐 단위 정수를 소수 금액으로 변환합니다. (12990 → 129.90)
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, minorUnitExponent)
}

// ParseMinorUnits 최소 화폐 단위 금액 문자열을 소수 금액으로 변환합니다.
// JSON 숫자 원문("12990", "12990.0")을 그대로 받을 수 있습니다.
func ParseMinorUnits(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(minorUnitExponent), nil
}

// DiscountPercentage discount / (current + discount)를 소수 둘째 자리로 반올림해 반환합니다.
// 두 값 중 하나라도 없거나 current가 0 이하이면 0입니다.
func DiscountPercentage(current, discount *decimal.Decimal) decimal.Decimal {
	if current == nil || discount == nil || !current.IsPositive() {
		return decimal.Zero
	}

	total := current.Add(*discount)
	if total.IsZero() {
		return decimal.Zero
	}

	return discount.Div(total).Round(2)
}

// Facet name 항목을 반환합니다.
func (b PriceBlock) Facet(name string) (PriceFacet, bool) {
	f, ok := b.Facets[name]
	return f, ok
}

// Amount name 항목의 금액을 반환합니다. 항목이 없으면 nil입니다.
func (b PriceBlock) Amount(name string) *decimal.Decimal {
	f, ok := b.Facet(name)
	if !ok {
		return nil
	}
	amount := f.Amount
	return &amount
}

// Currency 가격 항목 중 처음 발견되는 통화 코드를 반환합니다.
// current, original, tracking 순서로 확인한 뒤 나머지 항목을 이름순으로 확인합니다.
func (b PriceBlock) Currency() string {
	for _, name := range []string{FacetCurrent, FacetOriginal, FacetTracking} {
		if f, ok := b.Facets[name]; ok && f.Currency != "" {
			return f.Currency
		}
	}
	for _, name := range slices.Sorted(maps.Keys(b.Facets)) {
		if c := b.Facets[name].Currency; c != "" {
			return c
		}
	}
	return ""
}

// UnitPrice 단일 변형 상품에 적용할 가격을 반환합니다.
// 추적 가격(tracking)을 우선하고, 없으면 현재 가격(current)을 사용합니다.
func (b PriceBlock) UnitPrice() *decimal.Decimal {
	if amount := b.Amount(FacetTracking); amount != nil {
		return amount
	}
	return b.Amount(FacetCurrent)
}
