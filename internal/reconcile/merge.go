// Package reconcile 세 데이터 소스의 정규화 결과를 SKU 기준으로 병합해 하나의 상품 레코드를 만듭니다.
//
// 우선순위:
//   - 상품 기본 정보와 가격: 구조화 API, 없으면 구조화 데이터(JSON-LD)
//   - 변형 목록, 사이즈, 재고: 렌더링 페이지의 SKU별 사이즈 표
//   - GTIN, 판매자 ID: 구조화 API의 변형 목록
//   - 판매자/배송 주체, 단일 변형 상품의 실시간 재고: 원본 마크업 캐시
package reconcile

import (
	"strconv"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/product"
	"github.com/darkkaiser/zalando-scraper/internal/source/rawmarkup"
	"github.com/darkkaiser/zalando-scraper/internal/source/rendered"
	"github.com/darkkaiser/zalando-scraper/internal/source/structured"
)

// Input 병합할 소스별 결과입니다. 실패했거나 실행되지 않은 소스는 nil입니다.
type Input struct {
	Identity product.Identity

	Structured *structured.Product
	Rendered   *rendered.Result
	Raw        *rawmarkup.Result

	// Partial 일부 소스가 실패한 상태로 병합하는지 여부. 레코드에 FlagPartial을 남깁니다.
	Partial bool

	// MergedAt 병합 시각. 0이면 현재 시각(UTC)을 사용합니다.
	MergedAt time.Time
}

// Merge 소스별 결과를 병합합니다. 반환된 레코드는 이후 수정하지 않습니다.
func Merge(in Input) *product.Record {
	record := baseRecord(in)

	// 렌더링 페이지의 사이즈 표로 SKU → 변형 맵
	variants, index := variantsFromSizes(in.Rendered, record.Price)

	// 구조화 API 변형의 GTIN과 판매자 ID
	if in.Structured != nil {
		for _, s := range in.Structured.Simples {
			i, ok := index[s.SKU]
			if !ok {
				continue
			}
			variants[i].GTIN = s.GTIN()
			variants[i].MerchantID = s.MerchantID
		}
	}

	// 사이즈 표가 없으면 단일 변형을 합성
	if len(variants) == 0 {
		variants = []product.Variant{singleVariant(in, record)}
		record.Flags = append(record.Flags, product.FlagSingleVariant)
	}

	// 원본 마크업의 판매자/배송 주체
	for i := range variants {
		if f, ok := in.Raw.Fulfillment(variants[i].SKU); ok {
			variants[i].Merchant = f.Merchant
			variants[i].Shipper = f.Shipper
		}
	}
	record.Variants = variants

	// 강조 문구와 렌더링 페이지의 부가 정보
	if in.Rendered != nil {
		record.Highlight = in.Rendered.Highlight
		record.LegacySizes = attachLegacySKUs(in.Rendered.LegacySizes, in.Rendered.ModernSizes)
		if ld := in.Rendered.LinkedData; ld != nil {
			linked := ld.Product
			summary := ld.Summary
			record.LinkedProduct = &linked
			record.Offers = ld.Offers
			record.AvailabilitySummary = &summary
		}
	}

	if in.Partial {
		record.Flags = append(record.Flags, product.FlagPartial)
	}

	mergedAt := in.MergedAt
	if mergedAt.IsZero() {
		mergedAt = time.Now().UTC()
	}
	record.Provenance = product.Provenance{
		MergedAt:    mergedAt,
		DataSources: contributors(in),
	}

	return record
}

// baseRecord 상품 기본 정보를 채웁니다. 구조화 API 결과가 없으면 구조화 데이터와 URL의 상품 코드를 사용합니다.
func baseRecord(in Input) *product.Record {
	record := &product.Record{
		URL:      in.Identity.URL,
		Variants: []product.Variant{},
	}

	if p := in.Structured; p != nil {
		record.ID = p.ID
		record.Name = p.Name
		record.SKU = p.SKU
		record.Brand = p.Brand
		record.ModelNumber = p.ModelNumber
		record.GTIN = p.GTIN
		record.Price = p.Price
		record.PackshotImage = p.PackshotImage
		record.Silhouette = p.Silhouette
		record.NavigationTargetGroup = p.NavigationTargetGroup
		return record
	}

	record.ID = in.Identity.ERN()
	record.SKU = in.Identity.ProductCode
	if in.Rendered != nil && in.Rendered.LinkedData != nil {
		lp := in.Rendered.LinkedData.Product
		record.Name = lp.Name
		record.Brand = lp.Brand
		if lp.SKU != "" {
			record.SKU = lp.SKU
		}
	}
	return record
}

// variantsFromSizes SKU별 사이즈 표를 문서 순서대로 변형 목록으로 바꾸고 SKU 색인을 만듭니다.
// 구조화 데이터 가격이 없는 사이즈는 상품 가격을 사용합니다.
func variantsFromSizes(r *rendered.Result, price product.PriceBlock) ([]product.Variant, map[string]int) {
	index := make(map[string]int)
	if r == nil {
		return nil, index
	}

	variants := make([]product.Variant, 0, len(r.ModernSizes))
	for _, s := range r.ModernSizes {
		if _, dup := index[s.SKU]; dup || s.SKU == "" {
			continue
		}

		v := product.Variant{
			SKU:          s.SKU,
			Size:         s.SizeLabel,
			Note:         s.Note,
			Availability: ModernAvailability(s),
			Quantity:     s.Quantity,
			Price:        s.Price,
			Currency:     s.Currency,
			LongDistance: s.LongDistance,
		}
		if v.Price == nil {
			v.Price = price.UnitPrice()
			v.Currency = price.Currency()
		}

		index[s.SKU] = len(variants)
		variants = append(variants, v)
	}

	return variants, index
}

// ModernAvailability 사이즈 표 항목의 재고 상태를 판단합니다.
//
//   - 품절 표시: out_of_stock
//   - 숫자 수량: 수량 기준 (0 이하 out_of_stock, 3 이하 low_stock, 그 외 in_stock)
//   - 수량을 모르는 재고(">=2"): in_stock
func ModernAvailability(s rendered.ModernSize) product.Availability {
	if s.Availability == rendered.ModernOutOfStock {
		return product.OutOfStock
	}
	if n, err := strconv.Atoi(s.Quantity); err == nil {
		return product.AvailabilityFromQuantity(n)
	}
	return product.InStock
}

// singleVariant 사이즈 표가 없는 상품의 단일 변형을 합성합니다.
//
// 수량은 원본 마크업의 실시간 재고, 가격은 추적 가격(없으면 현재 가격),
// SKU는 원본 마크업의 SKU(없으면 상품 SKU)를 사용합니다.
func singleVariant(in Input, record *product.Record) product.Variant {
	v := product.Variant{
		SKU:          record.SKU,
		Size:         product.OneSizeLabel,
		Availability: product.Unknown,
		Price:        record.Price.UnitPrice(),
		Currency:     record.Price.Currency(),
		GTIN:         record.GTIN,
	}

	if in.Raw != nil {
		if in.Raw.Stock.SKU != "" {
			v.SKU = in.Raw.Stock.SKU
		}
		if q := in.Raw.Stock.Quantity; q != nil {
			v.Quantity = strconv.Itoa(*q)
			v.Availability = product.AvailabilityFromQuantity(*q)
		}
	}

	if in.Structured != nil {
		for _, s := range in.Structured.Simples {
			if s.SKU == v.SKU {
				v.GTIN = s.GTIN()
				v.MerchantID = s.MerchantID
				break
			}
		}
	}

	return v
}

// attachLegacySKUs 사이즈 이름이 같은 SKU별 사이즈 표 항목의 SKU를 단순 사이즈 목록에 채웁니다.
func attachLegacySKUs(legacy []product.SizeInfo, modern []rendered.ModernSize) []product.SizeInfo {
	if len(legacy) == 0 {
		return nil
	}

	skuBySize := make(map[string]string, len(modern))
	for _, m := range modern {
		if _, ok := skuBySize[m.SizeLabel]; !ok && m.SizeLabel != "" {
			skuBySize[m.SizeLabel] = m.SKU
		}
	}

	out := make([]product.SizeInfo, len(legacy))
	for i, s := range legacy {
		out[i] = s
		if out[i].SKU == "" {
			out[i].SKU = skuBySize[s.Size]
		}
	}
	return out
}

// contributors 비어 있지 않은 결과를 낸 소스를 고정 순서로 반환합니다.
func contributors(in Input) []product.Source {
	sources := make([]product.Source, 0, len(product.AllSources))
	if in.Structured != nil {
		sources = append(sources, product.SourceAPI)
	}
	if !in.Rendered.Empty() {
		sources = append(sources, product.SourceCrawl)
	}
	if in.Raw != nil && (len(in.Raw.Merchants) > 0 || in.Raw.Stock.SKU != "") {
		sources = append(sources, product.SourceRaw)
	}
	return sources
}
