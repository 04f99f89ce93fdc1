package rendered

import (
	"testing"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkedDataFixture = `<script type="application/ld+json">{
	"@context": "https://schema.org",
	"@type": "Product",
	"name": "Sneakers basse",
	"brand": {"@type": "Brand", "name": "Nike Sportswear"},
	"description": "  Sneakers in pelle  ",
	"color": "white",
	"sku": "NI112O0IH-A11",
	"offers": [
		{"@type": "Offer", "sku": "NI112O0IH-A110001", "price": "89.95", "priceCurrency": "EUR", "availability": "https://schema.org/InStock", "url": "https://www.zalando.it/p1"},
		{"@type": "Offer", "sku": "NI112O0IH-A110002", "price": "79.95", "priceCurrency": "EUR", "availability": "http://schema.org/OutOfStock"},
		{"@type": "Offer", "sku": "NI112O0IH-A110003", "priceCurrency": "EUR", "availability": "https://schema.org/LimitedAvailability"}
	]
}</script>`

func TestParseLinkedData(t *testing.T) {
	t.Parallel()

	ld, err := ParseLinkedData(linkedDataFixture)
	require.NoError(t, err)
	require.NotNil(t, ld)

	assert.Equal(t, product.LinkedProduct{
		Name:        "Sneakers basse",
		Brand:       "Nike Sportswear",
		Description: "Sneakers in pelle",
		Color:       "white",
		SKU:         "NI112O0IH-A11",
	}, ld.Product)

	require.Len(t, ld.Offers, 3)
	assert.Equal(t, "NI112O0IH-A110001", ld.Offers[0].SKU)
	assert.True(t, decimal.RequireFromString("89.95").Equal(*ld.Offers[0].Price))
	assert.Equal(t, "EUR", ld.Offers[0].Currency)
	assert.Equal(t, "InStock", ld.Offers[0].Availability)
	assert.Equal(t, "https://www.zalando.it/p1", ld.Offers[0].URL)
	assert.Equal(t, "OutOfStock", ld.Offers[1].Availability)
	assert.Nil(t, ld.Offers[2].Price)

	assert.Equal(t, product.AvailabilitySummary{Total: 3, Available: 1, OutOfStock: 1, Rate: "33.3%"}, ld.Summary)
}

func TestParseLinkedData_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		script    string
		wantBrand string
		wantOffer int
		wantRate  string
	}{
		{
			name:      "단일 offer 객체와 문자열 brand",
			script:    `{"@type":"Product","brand":"Adidas","offers":{"sku":"S1","price":10,"availability":"InStock"}}`,
			wantBrand: "Adidas",
			wantOffer: 1,
			wantRate:  "100.0%",
		},
		{
			name:      "@graph",
			script:    `{"@graph":[{"@type":"BreadcrumbList"},{"@type":"Product","brand":{"name":"Puma"}}]}`,
			wantBrand: "Puma",
			wantRate:  "0%",
		},
		{
			name:      "최상위 배열",
			script:    `[{"@type":"WebPage"},{"@type":"product","brand":{"name":"Vans"},"offers":[]}]`,
			wantBrand: "Vans",
			wantRate:  "0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ld, err := ParseLinkedData(tt.script)
			require.NoError(t, err)
			require.NotNil(t, ld)
			assert.Equal(t, tt.wantBrand, ld.Product.Brand)
			assert.Len(t, ld.Offers, tt.wantOffer)
			assert.Equal(t, tt.wantRate, ld.Summary.Rate)
		})
	}
}

func TestParseLinkedData_Errors(t *testing.T) {
	t.Parallel()

	t.Run("빈 입력은 nil", func(t *testing.T) {
		t.Parallel()

		ld, err := ParseLinkedData(`<script type="application/ld+json">  </script>`)
		assert.NoError(t, err)
		assert.Nil(t, ld)
	})

	t.Run("잘못된 JSON", func(t *testing.T) {
		t.Parallel()

		_, err := ParseLinkedData(`<script>{"@type": "Product",</script>`)
		assert.True(t, apperrors.Is(err, apperrors.MalformedResponse))
	})

	t.Run("상품 객체 없음", func(t *testing.T) {
		t.Parallel()

		_, err := ParseLinkedData(`[]`)
		assert.True(t, apperrors.Is(err, apperrors.MalformedResponse))
	})
}

func TestEnrichPrices(t *testing.T) {
	t.Parallel()

	price := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	t.Run("판매 정보 없음", func(t *testing.T) {
		t.Parallel()

		sizes := []ModernSize{{SKU: "A", Availability: ModernInStock}}
		EnrichPrices(sizes, nil)
		assert.Nil(t, sizes[0].Price)
		assert.Empty(t, sizes[0].Currency)
	})

	t.Run("SKU별 가격, 품절, 폴백", func(t *testing.T) {
		t.Parallel()

		offers := []product.Offer{
			{SKU: "A", Price: price("50.00"), Currency: "EUR"},
			{SKU: "B", Price: price("45.50"), Currency: "EUR"},
			{SKU: "C", Currency: "EUR"},
		}
		sizes := []ModernSize{
			{SKU: "B", Availability: ModernInStock},
			{SKU: "A", Availability: ModernOutOfStock},
			{SKU: "Z", Availability: ModernInStock},
			{SKU: "C", Availability: ModernInStock},
		}

		EnrichPrices(sizes, offers)

		assert.True(t, price("45.50").Equal(*sizes[0].Price))
		assert.True(t, decimal.Zero.Equal(*sizes[1].Price))
		assert.Equal(t, "EUR", sizes[1].Currency)
		assert.True(t, price("50.00").Equal(*sizes[2].Price))
		assert.Nil(t, sizes[3].Price, "판매 정보에 있는 SKU는 다른 사이즈의 가격으로 대체하지 않아야 합니다")
		for _, s := range sizes {
			assert.Equal(t, "EUR", s.Currency)
		}
	})

	t.Run("같은 SKU의 판매 정보가 여러 개", func(t *testing.T) {
		t.Parallel()

		offers := []product.Offer{
			{SKU: "X", Price: price("10.00"), Currency: "EUR"},
			{SKU: "A", Currency: "EUR"},
			{SKU: "A", Price: price("30.00"), Currency: "EUR"},
			{SKU: "A", Price: price("99.00"), Currency: "EUR"},
		}
		sizes := []ModernSize{{SKU: "A", Availability: ModernInStock}}

		EnrichPrices(sizes, offers)

		require.NotNil(t, sizes[0].Price)
		assert.True(t, price("30.00").Equal(*sizes[0].Price))
	})
}
