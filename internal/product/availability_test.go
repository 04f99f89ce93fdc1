package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityFromQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quantity int
		want     Availability
	}{
		{-1, OutOfStock},
		{0, OutOfStock},
		{1, LowStock},
		{3, LowStock},
		{4, InStock},
		{120, InStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AvailabilityFromQuantity(tt.quantity), "quantity=%d", tt.quantity)
	}
}

func TestAvailabilityFromLinkedData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  Availability
	}{
		{"전체 URL", "https://schema.org/InStock", InStock},
		{"http URL", "http://schema.org/OutOfStock", OutOfStock},
		{"접두어 없음", "InStock", InStock},
		{"스네이크 표기", "out_of_stock", OutOfStock},
		{"한정 수량", "https://schema.org/LimitedAvailability", LowStock},
		{"판매 종료", "Discontinued", OutOfStock},
		{"품절", "SoldOut", OutOfStock},
		{"예약 판매", "https://schema.org/PreOrder", Unknown},
		{"빈 값", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AvailabilityFromLinkedData(tt.value))
		})
	}
}

func TestStripSchemaOrg(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "InStock", StripSchemaOrg("https://schema.org/InStock"))
	assert.Equal(t, "InStock", StripSchemaOrg("InStock"))
	assert.Empty(t, StripSchemaOrg(""))
}
