// Package rendered 헤드리스 브라우저로 렌더링한 상품 페이지에서 사이즈, 재고, 가격 정보를 추출하는 데이터 소스입니다.
//
// 렌더링된 HTML에 선택자 폴백 체인으로 구성된 추출 스키마를 적용한 뒤 세 가지 결과를 만듭니다.
//   - 단순 사이즈 목록 (이전 버전 호환)
//   - SKU별 사이즈 표 (사이즈 선택 위젯 마크업)
//   - 구조화 데이터(JSON-LD)의 판매 정보
//
// 렌더링 실패만 에러로 반환하며, 각 결과의 해석 실패는 해당 결과만 비우고 경고 로그를 남깁니다.
package rendered

import (
	"context"
	"fmt"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/fetcher"
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
)

const component = "source.rendered"

// Result 렌더링 페이지 추출 결과입니다.
type Result struct {
	// Fields 스키마 필드별 원본 추출 값
	Fields Values

	LegacySizes []product.SizeInfo
	ModernSizes []ModernSize

	// LinkedData 구조화 데이터. 페이지에 없거나 해석에 실패하면 nil입니다.
	LinkedData *LinkedData

	Highlight  string
	HTMLLength int
}

// Empty 병합에 사용할 정보가 하나도 없는지 확인합니다.
func (r *Result) Empty() bool {
	return r == nil || (len(r.ModernSizes) == 0 && len(r.LegacySizes) == 0 && r.LinkedData == nil && r.Highlight == "")
}

// Extractor 렌더링과 스키마 적용을 수행합니다.
type Extractor struct {
	renderer Renderer
	schema   *Schema
	phrases  Phrases
}

// NewExtractor 새로운 Extractor를 생성합니다. schema가 nil이면 내장 스키마를 사용합니다.
func NewExtractor(renderer Renderer, schema *Schema, phrases Phrases) *Extractor {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Extractor{
		renderer: renderer,
		schema:   schema,
		phrases:  phrases,
	}
}

// Extract url을 렌더링하고 결과를 추출합니다. 렌더링에 실패하면 SourceUnavailable 에러를 반환합니다.
func (e *Extractor) Extract(ctx context.Context, url string) (*Result, error) {
	start := time.Now()

	html, err := e.renderer.Render(ctx, url)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.SourceUnavailable, "상품 페이지 렌더링 실패")
	}

	result := e.Parse(html)

	applog.WithComponentAndFields(component, applog.Fields{
		"url":          url,
		"html_length":  result.HTMLLength,
		"legacy_sizes": len(result.LegacySizes),
		"modern_sizes": len(result.ModernSizes),
		"offers":       offerCount(result.LinkedData),
		"duration":     time.Since(start).String(),
	}).Debug("렌더링 페이지 추출 완료")

	return result, nil
}

// Parse 렌더링된 HTML에서 결과를 추출합니다. 해석 실패는 해당 결과만 비웁니다.
func (e *Extractor) Parse(html string) *Result {
	result := &Result{HTMLLength: len(html)}

	doc, err := fetcher.ParseHTML(html)
	if err != nil {
		e.warn("HTML 문서 파싱 실패: 빈 결과를 사용합니다", err)
		return result
	}

	result.Fields = e.schema.Apply(doc)
	result.Highlight = result.Fields.String(FieldHighlight)

	e.soft("단순 사이즈 목록", func() error {
		result.LegacySizes = NormalizeLegacySizes(legacyEntries(result.Fields), e.phrases)
		return nil
	})

	e.soft("SKU별 사이즈 표", func() error {
		container := result.Fields.String(FieldSizesContainer)
		if container == "" {
			container = html
		}
		result.ModernSizes = ParseModernSizes(container, e.phrases)
		return nil
	})

	e.soft("구조화 데이터", func() error {
		ld, err := ParseLinkedData(result.Fields.String(FieldJSONLD))
		if err != nil {
			return err
		}
		result.LinkedData = ld
		return nil
	})

	if result.LinkedData != nil {
		EnrichPrices(result.ModernSizes, result.LinkedData.Offers)
	}

	return result
}

// soft fn의 에러와 패닉을 경고 로그로 바꿉니다.
func (e *Extractor) soft(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			e.warn(name+" 해석 중 패닉 발생: 빈 결과를 사용합니다", fmt.Errorf("%v", r))
		}
	}()

	if err := fn(); err != nil {
		e.warn(name+" 해석 실패: 빈 결과를 사용합니다", err)
	}
}

func (e *Extractor) warn(msg string, err error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"schema": e.schema.Name,
		"error":  err.Error(),
	}).Warn(msg)
}

func offerCount(ld *LinkedData) int {
	if ld == nil {
		return 0
	}
	return len(ld.Offers)
}
