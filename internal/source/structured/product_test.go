package structured

import (
	"testing"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardFixture = `[{"data":{"product":{"family":{"products":{"edges":[{"node":{
	"id":"ern:product::A9182F001-T11",
	"name":"AC/DC Calze",
	"sku":"A9182F001-T11",
	"brand":{"name":"Happy Socks"},
	"displayPrice":{
		"current":{"amount":9000,"currency":"EUR"},
		"original":{"amount":12990,"currency":"EUR"},
		"promotional":null,
		"trackingCurrentAmount":9000,
		"trackingDiscountAmount":1000,
		"displayMode":"DISCOUNTED"
	},
	"packshotImage":{"uri":"https://img01.ztat.net/article/a9182f001-t11.jpg"},
	"silhouette":"SOCKS",
	"navigationTargetGroup":"MEN"
}}]}}}}}]`

const skuFixture = `[{"data":{"product":{
	"sku":"A9182F001-T11",
	"modelNumber":"MN-1",
	"simples":[
		{"sku":"A9182F001-T110001","size":"36-40","gtins":["4000000000011"],"offer":{"merchant":{"id":"m-1"}}},
		{"sku":"A9182F001-T110002","size":"41-46","gtins":["4000000000028"],"allOffers":[{"merchant":{"id":"m-2"}}]}
	]
}}}]`

func TestNormalize(t *testing.T) {
	t.Parallel()

	p, err := Normalize([]byte(cardFixture), []byte(skuFixture))
	require.NoError(t, err)

	t.Run("가격은 100으로 한 번만 나눔", func(t *testing.T) {
		t.Parallel()

		original := p.Price.Amount(product.FacetOriginal)
		require.NotNil(t, original)
		assert.True(t, decimal.RequireFromString("129.90").Equal(*original), "got=%s", original)

		current, ok := p.Price.Facet(product.FacetCurrent)
		require.True(t, ok)
		assert.Equal(t, "90.00", current.Amount.StringFixed(2))
		assert.Equal(t, "EUR", current.Currency)
	})

	t.Run("추적 금액 항목과 할인율", func(t *testing.T) {
		t.Parallel()

		tracking, ok := p.Price.Facet(product.FacetTracking)
		require.True(t, ok)
		assert.Equal(t, "90.00", tracking.Amount.StringFixed(2))
		assert.Equal(t, "EUR", tracking.Currency, "추적 금액은 다른 항목의 통화를 따라야 합니다")

		assert.True(t, decimal.RequireFromString("0.10").Equal(p.Price.DiscountPercentage), "got=%s", p.Price.DiscountPercentage)
	})

	t.Run("null 항목과 문자열 항목은 건너뜀", func(t *testing.T) {
		t.Parallel()

		_, ok := p.Price.Facet(product.FacetPromotional)
		assert.False(t, ok)
		_, ok = p.Price.Facet("displayMode")
		assert.False(t, ok)
	})

	t.Run("변형 목록과 판매자 ID", func(t *testing.T) {
		t.Parallel()

		require.Len(t, p.Simples, 2)
		assert.Equal(t, "A9182F001-T110001", p.Simples[0].SKU)
		assert.Equal(t, "m-1", p.Simples[0].MerchantID)
		assert.Equal(t, "4000000000011", p.Simples[0].GTIN())
		assert.Equal(t, "m-2", p.Simples[1].MerchantID, "offer가 없으면 allOffers의 판매자를 사용해야 합니다")
		assert.Equal(t, "41-46", p.Simples[1].Size)
		assert.Contains(t, string(p.Simples[1].Raw), `"allOffers"`)
	})

	t.Run("선택 항목", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://img01.ztat.net/article/a9182f001-t11.jpg", p.PackshotImage)
		assert.Equal(t, "SOCKS", p.Silhouette)
		assert.Equal(t, "MEN", p.NavigationTargetGroup)
	})
}

func TestNormalize_NoDiscount(t *testing.T) {
	t.Parallel()

	card := `[{"data":{"product":{"family":{"products":{"edges":[{"node":{
		"id":"x","name":"n","sku":"s","brand":{"name":"b"},
		"displayPrice":{"current":{"amount":4995,"currency":"GBP"}}
	}}]}}}}}]`
	sku := `[{"data":{"product":{"sku":"s"}}}]`

	p, err := Normalize([]byte(card), []byte(sku))
	require.NoError(t, err)

	assert.True(t, p.Price.DiscountPercentage.IsZero())
	assert.Empty(t, p.Simples)
	assert.Empty(t, p.GTIN)
	assert.Empty(t, p.PackshotImage)
}

func TestNormalize_MissingRequiredKey(t *testing.T) {
	t.Parallel()

	validSKU := `[{"data":{"product":{"sku":"s"}}}]`

	tests := []struct {
		name string
		card string
		sku  string
	}{
		{
			name: "JSON 아님",
			card: `<html>blocked</html>`,
			sku:  validSKU,
		},
		{
			name: "상품 노드 없음",
			card: `[{"data":{"product":null}}]`,
			sku:  validSKU,
		},
		{
			name: "brand.name 없음",
			card: `[{"data":{"product":{"family":{"products":{"edges":[{"node":{"id":"x","name":"n","sku":"s","brand":{},"displayPrice":{}}}]}}}}}]`,
			sku:  validSKU,
		},
		{
			name: "displayPrice 없음",
			card: `[{"data":{"product":{"family":{"products":{"edges":[{"node":{"id":"x","name":"n","sku":"s","brand":{"name":"b"}}}]}}}}}]`,
			sku:  validSKU,
		},
		{
			name: "SKU 응답에 sku 없음",
			card: cardFixture,
			sku:  `[{"data":{"product":{"modelNumber":"m"}}}]`,
		},
		{
			name: "SKU 응답 에러",
			card: cardFixture,
			sku:  `[{"errors":[{"message":"PersistedQueryNotFound"}]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize([]byte(tt.card), []byte(tt.sku))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.MalformedResponse), "MalformedResponse 타입이어야 합니다: %v", err)
		})
	}
}
