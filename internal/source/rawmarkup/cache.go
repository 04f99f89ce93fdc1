package rawmarkup

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/zalando-scraper/internal/fetcher"
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
)

const (
	// cacheContainerSelector 임베디드 캐시 script를 감싸는 최상위 컨테이너
	cacheContainerSelector = "div.x7LsVH"
	cacheScriptSelector    = `script[id^="re-ph"]`

	cacheField = "cache"

	// cacheTrailerLength 캐시 객체 뒤, 닫는 script 태그 앞에 붙는 꼬리 문자열의 길이
	cacheTrailerLength = 14
)

const (
	merchantQueryID = "b11e5482aaf960948f5c738fdbc930d646d74531e57381722c621491826959f8"
	stockQueryID    = "a93ea1d4d2901d1dca65ce7796293f177db5a6be619c624e69d27245362e0b7b"
)

// MerchantKey 판매자/배송 라벨이 담긴 캐시 항목의 조회 키를 반환합니다.
// 키는 페이지가 직렬화한 문자열과 글자 단위로 같아야 하므로 직접 조립합니다.
func MerchantKey(productCode string) string {
	return `{"id":"` + merchantQueryID + `","variables":{"id":"ern:product::` + productCode + `"},"extra":{}}`
}

// StockKey 재고 수량이 담긴 캐시 항목의 조회 키를 반환합니다.
func StockKey(productCode string) string {
	return `{"id":"` + stockQueryID + `","variables":{"id":"ern:product::` + productCode + `","shouldUseOldPriceDisplayForUI":true},"extra":{}}`
}

// Cache 페이지에 직렬화되어 있는 쿼리 결과 캐시입니다. 키는 쿼리 식별자와 변수를 직렬화한 문자열입니다.
type Cache map[string]json.RawMessage

// Lookup key에 해당하는 캐시 항목을 반환합니다. 없으면 CacheKeyNotFound 에러를 반환합니다.
func (c Cache) Lookup(key string) (json.RawMessage, error) {
	entry, ok := c[key]
	if !ok {
		return nil, apperrors.Newf(apperrors.CacheKeyNotFound, "임베디드 캐시에 조회 키가 없습니다 (key=%s)", key)
	}
	return entry, nil
}

// ParseCache 원본 마크업에서 임베디드 캐시를 꺼냅니다.
//
// 컨테이너 안 첫 번째 're-ph' script의 마크업에서 "cache" 필드 이름 두 글자 앞부터
// 닫는 script 태그 앞의 꼬리 문자열 직전까지를 잘라 JSON으로 해석합니다.
// 구조가 다르면 MalformedResponse 에러를 반환합니다.
func ParseCache(html string) (Cache, error) {
	doc, err := fetcher.ParseHTML(html)
	if err != nil {
		return nil, err
	}

	container := doc.Find(cacheContainerSelector).First()
	if container.Length() == 0 {
		return nil, apperrors.Newf(apperrors.MalformedResponse, "임베디드 캐시 컨테이너(%s)를 찾을 수 없습니다", cacheContainerSelector)
	}

	script := container.Find(cacheScriptSelector).First()
	if script.Length() == 0 {
		return nil, apperrors.New(apperrors.MalformedResponse, "임베디드 캐시 script 요소를 찾을 수 없습니다")
	}

	markup, err := goquery.OuterHtml(script)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.MalformedResponse, "임베디드 캐시 script 마크업을 읽을 수 없습니다")
	}

	start := strings.Index(markup, cacheField) - 2
	end := strings.Index(markup, "</script>") - cacheTrailerLength
	if start < 0 || end <= start {
		return nil, apperrors.New(apperrors.MalformedResponse, "임베디드 캐시 객체의 경계를 찾을 수 없습니다")
	}

	var payload struct {
		Cache Cache `json:"cache"`
	}
	if err := json.Unmarshal([]byte(markup[start:end]), &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.MalformedResponse, "임베디드 캐시 객체가 올바른 JSON이 아닙니다")
	}
	if payload.Cache == nil {
		return nil, apperrors.New(apperrors.MalformedResponse, "임베디드 캐시 객체에 cache 필드가 없습니다")
	}

	return payload.Cache, nil
}
