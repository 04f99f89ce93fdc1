package rendered

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	"github.com/darkkaiser/zalando-scraper/internal/product"
)

// Phrases 재고 안내 문구를 판별하는 로케일별 문구 집합입니다. 비교는 대소문자를 구분하지 않습니다.
type Phrases struct {
	OutOfStock   []string
	Available    []string
	SingleItem   []string
	LongDistance []string
}

// NewPhrases 설정의 문구를 소문자로 정규화합니다.
func NewPhrases(cfg config.PhrasesConfig) Phrases {
	return Phrases{
		OutOfStock:   lowerAll(cfg.OutOfStock),
		Available:    lowerAll(cfg.Available),
		SingleItem:   lowerAll(cfg.SingleItem),
		LongDistance: lowerAll(cfg.LongDistance),
	}
}

func lowerAll(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// containsAny text(소문자)에 phrases 중 하나라도 포함되어 있는지 확인합니다.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

var legacyQuantityPattern = regexp.MustCompile(`(\d+)\s*articoli? disponibili?`)

// LegacyEntry 스키마의 AvailableSizes 목록 항목 하나입니다.
type LegacyEntry struct {
	Size         string
	Price        string
	Availability string
}

// legacyEntries 스키마 추출 결과에서 AvailableSizes 항목을 꺼냅니다.
func legacyEntries(values Values) []LegacyEntry {
	items := values.List(FieldAvailableSizes)
	entries := make([]LegacyEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, LegacyEntry{
			Size:         item.String("Size"),
			Price:        item.String("Price"),
			Availability: item.String("Availability"),
		})
	}
	return entries
}

// NormalizeLegacySizes 단순 사이즈 목록을 정규화합니다.
//
// 빈 사이즈, 통화 기호로 시작하는 사이즈(가격을 사이즈로 잘못 읽은 경우), 이미 나온 사이즈는 버립니다.
// 재고 상태는 안내 문구로 판별합니다.
//   - 품절 문구: out_of_stock
//   - 재고 문구: in_stock, "N articoli disponibili"의 N이 3 이하이면 low_stock
//   - 1개 남음 문구: low_stock, 수량 1
//   - 문구 없음: in_stock
func NormalizeLegacySizes(entries []LegacyEntry, phrases Phrases) []product.SizeInfo {
	seen := make(map[string]struct{}, len(entries))
	sizes := make([]product.SizeInfo, 0, len(entries))

	for _, e := range entries {
		size := strings.TrimSpace(e.Size)
		if size == "" || strings.HasPrefix(size, "€") || strings.HasPrefix(size, "$") || strings.HasPrefix(size, "£") {
			continue
		}
		if _, dup := seen[size]; dup {
			continue
		}
		seen[size] = struct{}{}

		availability, quantity := classifyLegacy(strings.ToLower(e.Availability), phrases)
		sizes = append(sizes, product.SizeInfo{
			Size:          size,
			Price:         strings.TrimSpace(e.Price),
			Availability:  availability,
			StockQuantity: quantity,
		})
	}

	return sizes
}

func classifyLegacy(text string, phrases Phrases) (product.Availability, *int) {
	switch {
	case containsAny(text, phrases.OutOfStock):
		return product.OutOfStock, nil

	case containsAny(text, phrases.Available):
		m := legacyQuantityPattern.FindStringSubmatch(text)
		if m == nil {
			return product.InStock, nil
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return product.InStock, nil
		}
		if n <= product.LowStockThreshold {
			return product.LowStock, &n
		}
		return product.InStock, &n

	case containsAny(text, phrases.SingleItem):
		one := 1
		return product.LowStock, &one

	default:
		return product.InStock, nil
	}
}
