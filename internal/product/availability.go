package product

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Availability 변형 상품의 재고 상태입니다.
type Availability string

const (
	InStock    Availability = "in_stock"
	LowStock   Availability = "low_stock"
	OutOfStock Availability = "out_of_stock"
	Unknown    Availability = "unknown"
)

// LowStockThreshold 재고 수량이 이 값 이하이면 품절 임박(low_stock)으로 분류합니다.
const LowStockThreshold = 3

// AvailabilityFromQuantity 확인된 재고 수량으로 재고 상태를 판단합니다.
func AvailabilityFromQuantity(quantity int) Availability {
	switch {
	case quantity <= 0:
		return OutOfStock
	case quantity <= LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

const schemaOrgPrefix = "schema.org/"

// StripSchemaOrg 구조화 데이터의 재고 값에서 'https://schema.org/' 접두어를 제거합니다.
//
//	StripSchemaOrg("https://schema.org/InStock") // "InStock"
func StripSchemaOrg(value string) string {
	if idx := strings.LastIndex(value, schemaOrgPrefix); idx != -1 {
		return value[idx+len(schemaOrgPrefix):]
	}
	return value
}

// AvailabilityFromLinkedData schema.org ItemAvailability 값을 재고 상태로 변환합니다.
// 표기 방식(InStock, in_stock, https://schema.org/InStock)은 구분하지 않습니다.
func AvailabilityFromLinkedData(value string) Availability {
	switch strcase.ToSnake(StripSchemaOrg(strings.TrimSpace(value))) {
	case "in_stock", "online_only", "in_store_only":
		return InStock
	case "limited_availability":
		return LowStock
	case "out_of_stock", "sold_out", "discontinued":
		return OutOfStock
	default:
		return Unknown
	}
}
