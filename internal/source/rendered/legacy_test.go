package rendered

import (
	"testing"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestNewPhrases(t *testing.T) {
	t.Parallel()

	p := NewPhrases(config.PhrasesConfig{
		OutOfStock: []string{" Esaurito ", "", "OUT of Stock"},
	})

	assert.Equal(t, []string{"esaurito", "out of stock"}, p.OutOfStock)
	assert.Empty(t, p.Available)
	assert.True(t, containsAny("taglia esaurito", p.OutOfStock))
	assert.False(t, containsAny("disponibile", p.OutOfStock))
}

func TestNormalizeLegacySizes_Availability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		availability     string
		wantAvailability product.Availability
		wantQuantity     *int
	}{
		{name: "품절", availability: "Esaurito", wantAvailability: product.OutOfStock},
		{name: "영문 품절", availability: "Out of stock", wantAvailability: product.OutOfStock},
		{name: "2개 남음", availability: "Solo 2 articoli disponibili", wantAvailability: product.LowStock, wantQuantity: intPtr(2)},
		{name: "3개 남음", availability: "3 articoli disponibili", wantAvailability: product.LowStock, wantQuantity: intPtr(3)},
		{name: "5개 남음", availability: "5 articoli disponibili", wantAvailability: product.InStock, wantQuantity: intPtr(5)},
		{name: "수량 없는 재고 문구", availability: "Available", wantAvailability: product.InStock},
		{name: "1개 남음", availability: "1 articolo disponibile", wantAvailability: product.LowStock, wantQuantity: intPtr(1)},
		{name: "문구 없음", availability: "", wantAvailability: product.InStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeLegacySizes([]LegacyEntry{{Size: "42", Price: " 29,95 € ", Availability: tt.availability}}, defaultPhrases())
			require.Len(t, got, 1)

			assert.Equal(t, "42", got[0].Size)
			assert.Equal(t, "29,95 €", got[0].Price)
			assert.Equal(t, tt.wantAvailability, got[0].Availability)
			assert.Equal(t, tt.wantQuantity, got[0].StockQuantity)
			assert.Empty(t, got[0].SKU)
		})
	}
}

func TestNormalizeLegacySizes_Filtering(t *testing.T) {
	t.Parallel()

	entries := []LegacyEntry{
		{Size: "40"},
		{Size: "  "},
		{Size: "€ 29,95"},
		{Size: "$10"},
		{Size: "£12"},
		{Size: "40", Availability: "Esaurito"},
		{Size: " 41 "},
	}

	got := NormalizeLegacySizes(entries, defaultPhrases())
	require.Len(t, got, 2)

	assert.Equal(t, "40", got[0].Size)
	assert.Equal(t, product.InStock, got[0].Availability, "먼저 나온 항목을 사용해야 합니다")
	assert.Equal(t, "41", got[1].Size)
}

func TestLegacyEntries(t *testing.T) {
	t.Parallel()

	values := Values{
		FieldAvailableSizes: []Values{
			{"Size": "40", "Price": "10 €", "Availability": "Esaurito"},
			{"Size": "41", "Price": nil, "Availability": nil},
		},
	}

	assert.Equal(t, []LegacyEntry{
		{Size: "40", Price: "10 €", Availability: "Esaurito"},
		{Size: "41"},
	}, legacyEntries(values))

	assert.Empty(t, legacyEntries(Values{FieldAvailableSizes: nil}))
}
