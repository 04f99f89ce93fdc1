package rendered

import (
	"fmt"
	"strings"
	"testing"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPhrases() Phrases {
	return NewPhrases(config.PhrasesConfig{
		OutOfStock:   []string{"esaurito", "out of stock"},
		Available:    []string{"articoli disponibili", "available"},
		SingleItem:   []string{"1 articolo disponibile"},
		LongDistance: []string{"lunga distanza"},
	})
}

// sizeBlock 사이즈 선택 위젯의 블록 하나를 만듭니다.
func sizeBlock(sku, size string, notes ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<input type="radio" id="size-picker-%s" name="size-picker">`, sku)
	sb.WriteString("\n<div class=\"_0xLoFW\">\n")
	fmt.Fprintf(&sb, `<label for="size-picker-%s">`, sku)
	fmt.Fprintf(&sb, `<span class="voFjEy _2kjxJ6 SbJZ75 Sb5G3D HlZ_Tf">%s</span>`, size)
	for _, n := range notes {
		fmt.Fprintf(&sb, `<div class="nXkCf3"> <span class="_1x2Q">%s</span></div>`, n)
	}
	sb.WriteString(`</label></div>`)
	return sb.String()
}

func TestParseModernSizes_StockNotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		notes            []string
		wantAvailability ModernAvailability
		wantQuantity     string
		wantNote         string
		wantLongDistance bool
	}{
		{
			name:             "품절",
			notes:            []string{"Esaurito"},
			wantAvailability: ModernOutOfStock,
			wantQuantity:     "0",
			wantNote:         "Esaurito",
		},
		{
			name:             "2개 남음",
			notes:            []string{"2 articoli disponibili"},
			wantAvailability: ModernInStock,
			wantQuantity:     "2",
			wantNote:         "2 articoli disponibili",
		},
		{
			name:             "1개 남음",
			notes:            []string{"1 articolo disponibile"},
			wantAvailability: ModernInStock,
			wantQuantity:     "1",
			wantNote:         "1 articolo disponibile",
		},
		{
			name:             "수량 표기 (pezzi)",
			notes:            []string{"Solo 3 pezzi"},
			wantAvailability: ModernInStock,
			wantQuantity:     "3",
			wantNote:         "Solo 3 pezzi",
		},
		{
			name:             "문구 없음",
			wantAvailability: ModernInStock,
			wantQuantity:     QuantityUnknownInStock,
		},
		{
			name:             "원거리 배송 문구만 있으면 문구 제거",
			notes:            []string{"Spedizione a lunga distanza"},
			wantAvailability: ModernInStock,
			wantQuantity:     QuantityUnknownInStock,
			wantLongDistance: true,
		},
		{
			name:             "원거리 배송과 재고 문구",
			notes:            []string{"2 articoli disponibili, lunga distanza"},
			wantAvailability: ModernInStock,
			wantQuantity:     "2",
			wantNote:         "2 articoli disponibili, lunga distanza",
			wantLongDistance: true,
		},
		{
			name:             "가격과 사이즈 숫자는 문구가 아님",
			notes:            []string{"29,95 €", "42", "Esaurito"},
			wantAvailability: ModernOutOfStock,
			wantQuantity:     "0",
			wantNote:         "Esaurito",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sizes := ParseModernSizes(sizeBlock("A9182F001-T110001", "36-40", tt.notes...), defaultPhrases())
			require.Len(t, sizes, 1)

			got := sizes[0]
			assert.Equal(t, "A9182F001-T110001", got.SKU)
			assert.Equal(t, "36-40", got.SizeLabel)
			assert.Equal(t, tt.wantAvailability, got.Availability)
			assert.Equal(t, tt.wantQuantity, got.Quantity)
			assert.Equal(t, tt.wantNote, got.Note)
			assert.Equal(t, tt.wantLongDistance, got.LongDistance)
			assert.Nil(t, got.Price)
		})
	}
}

func TestParseModernSizes_OrderAndDuplicates(t *testing.T) {
	t.Parallel()

	markup := `<div class="MU8FaS">` +
		sizeBlock("SKU-3", "44") +
		sizeBlock("SKU-1", "40", "Esaurito") +
		sizeBlock("SKU-3", "44 (dup)", "Esaurito") +
		sizeBlock("SKU-2", "42") +
		`</div>`

	sizes := ParseModernSizes(markup, defaultPhrases())
	require.Len(t, sizes, 3)

	assert.Equal(t, "SKU-3", sizes[0].SKU)
	assert.Equal(t, "44", sizes[0].SizeLabel, "먼저 나온 블록을 사용해야 합니다")
	assert.Equal(t, ModernInStock, sizes[0].Availability)
	assert.Equal(t, "SKU-1", sizes[1].SKU)
	assert.Equal(t, "SKU-2", sizes[2].SKU)
}

func TestParseModernSizes_SizeLabelFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{
			name:  "Yb63TQ 클래스",
			label: `<span class="voFjEy SbJZ75 Sb5G3D Yb63TQ">M</span>`,
			want:  "M",
		},
		{
			name:  "일반 span에서 가격 제외",
			label: `<span class="voFjEy SbJZ75 Sb5G3D">€ 19,99</span><span class="voFjEy SbJZ75 Sb5G3D">XL</span>`,
			want:  "XL",
		},
		{
			name:  "HTML 엔티티",
			label: `<span class="voFjEy SbJZ75 Sb5G3D HlZ_Tf">42 &frac23;</span>`,
			want:  "42 ⅔",
		},
		{
			name:  "사이즈 없음",
			label: `<span class="other">?</span>`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			markup := `<input id="size-picker-S1" type="radio"><div><label>` + tt.label + `</label></div>`
			sizes := ParseModernSizes(markup, defaultPhrases())
			require.Len(t, sizes, 1)
			assert.Equal(t, tt.want, sizes[0].SizeLabel)
		})
	}
}

func TestParseModernSizes_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseModernSizes("", defaultPhrases()))
	assert.Empty(t, ParseModernSizes("<div>no sizes</div>", defaultPhrases()))
}
