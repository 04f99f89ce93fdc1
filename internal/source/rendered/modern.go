package rendered

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ModernAvailability 사이즈 선택 위젯에서 판별한 재고 상태입니다.
type ModernAvailability string

const (
	ModernInStock    ModernAvailability = "InStock"
	ModernOutOfStock ModernAvailability = "OutOfStock"
)

// QuantityUnknownInStock 재고는 있지만 수량을 알 수 없을 때의 기호 값입니다.
const QuantityUnknownInStock = ">=2"

// ModernSize 사이즈 선택 위젯에서 읽은 SKU별 사이즈 정보입니다.
type ModernSize struct {
	SKU          string
	SizeLabel    string
	Note         string
	Availability ModernAvailability

	// Quantity "0"(품절), 확인된 수량, "1"(1개 남음 문구), 또는 QuantityUnknownInStock
	Quantity string

	LongDistance bool

	// Price, Currency 구조화 데이터 판매 정보로 채워지는 가격. 채워지지 않았으면 nil입니다.
	Price    *decimal.Decimal
	Currency string
}

var (
	sizeBlockPattern = regexp.MustCompile(`<input[^>]+id="size-picker-([^"]+)"[^>]*>\s*<div[^>]*>\s*<label[^>]*>([\s\S]*?)</label>`)

	sizeLabelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<span class="[^"]*voFjEy[^"]*SbJZ75[^"]*Sb5G3D[^"]*HlZ_Tf[^"]*">([^<]+)</span>`),
		regexp.MustCompile(`<span class="[^"]*voFjEy[^"]*SbJZ75[^"]*Sb5G3D[^"]*Yb63TQ[^"]*">([^<]+)</span>`),
	}
	genericSizeLabelPattern = regexp.MustCompile(`<span class="[^"]*voFjEy[^"]*SbJZ75[^"]*Sb5G3D[^"]*">([^<]+)</span>`)

	notePatterns = []*regexp.Regexp{
		regexp.MustCompile(`<div class="nXkCf3">\s*<span[^>]*>([^<]+)</span>`),
		regexp.MustCompile(`class="[^"]*HlZ_Tf[^"]*"[^>]*>([^<]+)<`),
	}

	// sizeOnlyPattern 사이즈 숫자(예: 42, 42 1/3)만으로 된 텍스트는 안내 문구가 아닙니다.
	sizeOnlyPattern = regexp.MustCompile(`^\d+(?:\s\d/\d)?$`)

	modernQuantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*articolo`),
		regexp.MustCompile(`Articoli\s+disponibili\s*:\s*(\d+)`),
		regexp.MustCompile(`(\d+)\s*articoli`),
		regexp.MustCompile(`(\d+)\s*pezzi`),
		regexp.MustCompile(`(?:solo\s*)?(\d+)\s*(?:pz|pezzo|pezzi)`),
	}

	// stockNotePattern 원거리 배송 문구 외에 재고 정보가 함께 있는 안내 문구
	stockNotePattern = regexp.MustCompile(`(?i)articolo|articoli|esaurito`)
)

// ParseModernSizes 사이즈 선택 위젯 마크업에서 SKU별 사이즈 정보를 읽습니다.
//
// 'size-picker-<SKU>' input 바로 뒤의 label 블록을 사이즈 하나로 보며, 문서 순서를 유지합니다.
// 같은 SKU가 다시 나오면 먼저 나온 블록을 사용합니다.
func ParseModernSizes(markup string, phrases Phrases) []ModernSize {
	if markup == "" {
		return nil
	}

	blocks := sizeBlockPattern.FindAllStringSubmatch(markup, -1)
	sizes := make([]ModernSize, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))

	for _, b := range blocks {
		sku, label := strings.TrimSpace(b[1]), b[2]
		if sku == "" {
			continue
		}
		if _, dup := seen[sku]; dup {
			continue
		}
		seen[sku] = struct{}{}

		sizes = append(sizes, parseSizeBlock(sku, label, phrases))
	}

	return sizes
}

func parseSizeBlock(sku, label string, phrases Phrases) ModernSize {
	sizeLabel := extractSizeLabel(label)
	note := extractNote(label, sizeLabel)
	lowerNote := strings.ToLower(note)

	availability := ModernInStock
	if containsAny(lowerNote, phrases.OutOfStock) {
		availability = ModernOutOfStock
	}

	qty, hasQty := extractQuantity(note)

	longDistance := containsAny(lowerNote, phrases.LongDistance)
	if longDistance && !stockNotePattern.MatchString(note) {
		note = ""
	}

	var quantity string
	switch {
	case availability == ModernOutOfStock:
		quantity = "0"
	case hasQty:
		quantity = strconv.Itoa(qty)
	case containsAny(lowerNote, phrases.SingleItem):
		quantity = "1"
	default:
		quantity = QuantityUnknownInStock
	}

	return ModernSize{
		SKU:          sku,
		SizeLabel:    sizeLabel,
		Note:         note,
		Availability: availability,
		Quantity:     quantity,
		LongDistance: longDistance,
	}
}

func extractSizeLabel(label string) string {
	for _, p := range sizeLabelPatterns {
		if m := p.FindStringSubmatch(label); m != nil {
			return cleanText(m[1])
		}
	}
	for _, m := range genericSizeLabelPattern.FindAllStringSubmatch(label, -1) {
		if !strings.Contains(m[1], "€") {
			return cleanText(m[1])
		}
	}
	return ""
}

// extractNote 가격, 사이즈 이름, 사이즈 숫자가 아닌 첫 번째 텍스트를 안내 문구로 사용합니다.
func extractNote(label, sizeLabel string) string {
	for _, p := range notePatterns {
		for _, m := range p.FindAllStringSubmatch(label, -1) {
			n := cleanText(m[1])
			if n == "" || strings.Contains(n, "€") || n == sizeLabel || sizeOnlyPattern.MatchString(n) {
				continue
			}
			return n
		}
	}
	return ""
}

func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

func extractQuantity(note string) (int, bool) {
	for _, p := range modernQuantityPatterns {
		if m := p.FindStringSubmatch(note); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
