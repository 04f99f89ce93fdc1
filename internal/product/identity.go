// Package product 상품 수집 결과를 표현하는 도메인 모델과 상품 URL 해석기를 제공합니다.
//
// 세 가지 데이터 소스(구조화 API, 렌더링 페이지, 원본 마크업)는 각자의 방식으로 결과를 정규화한 뒤
// 이 패키지의 타입으로 병합됩니다. 모든 값은 요청 단위로 생성되며 요청 사이에 공유되지 않습니다.
package product

import (
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/pkg/validation"
)

// DefaultLanguage 업스트림 호출에 사용하는 고정 로케일입니다.
// 로케일을 바꿔도 응답 내용이 달라지지 않으므로 URL에서 추출하지 않습니다.
const DefaultLanguage = "en-US"

// AcceptedDomains 수집을 허용하는 Zalando 리테일 도메인 목록입니다.
var AcceptedDomains = []string{
	"zalando.de",
	"zalando.it",
	"zalando.fr",
	"zalando.es",
	"zalando.nl",
	"zalando.pl",
	"zalando.co.uk",
	"zalando.com",
}

// productCodePattern 상품 페이지 경로의 마지막 두 세그먼트(예: -a9182f001-t11.html)를 상품 코드로 인식합니다.
var productCodePattern = regexp.MustCompile(`-([a-zA-Z0-9]+-[a-zA-Z0-9]+)\.html$`)

// Identity 상품 URL에서 해석한 상품 식별 정보입니다.
type Identity struct {
	// ProductCode 대문자로 정규화된 상품 코드 (예: A9182F001-T11)
	ProductCode string `json:"product_code"`

	// Domain 'www.'를 제거한 호스트 (예: zalando.it)
	Domain string `json:"domain"`

	Language string `json:"language"`

	// URL 요청받은 원본 URL
	URL string `json:"url"`
}

// ERN 구조화 API와 임베디드 캐시 조회 키에서 상품을 가리키는 식별자를 반환합니다.
func (id Identity) ERN() string {
	return "ern:product::" + id.ProductCode
}

// Resolve 상품 URL을 검증하고 상품 코드와 도메인을 추출합니다.
//
// 다음 중 하나라도 해당하면 InvalidURL 에러를 반환합니다.
//   - http, https 이외의 스키마
//   - 허용 도메인 목록에 속하지 않는 호스트
//   - 경로에서 상품 코드를 찾을 수 없음
//
// 입출력이 없는 순수 함수이며 같은 입력에 대해 항상 같은 결과를 반환합니다.
func Resolve(rawURL string) (Identity, error) {
	rawURL = strings.TrimSpace(rawURL)

	u, err := url.Parse(rawURL)
	if err != nil {
		return Identity{}, apperrors.Wrap(err, apperrors.InvalidURL, "상품 URL을 해석할 수 없습니다")
	}
	if err := validation.ValidateHTTPScheme(u.Scheme); err != nil {
		return Identity{}, apperrors.Wrap(err, apperrors.InvalidURL, "상품 URL은 http 또는 https여야 합니다")
	}

	domain := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if err := validation.ValidateHostname(domain); err != nil {
		return Identity{}, apperrors.Wrap(err, apperrors.InvalidURL, "상품 URL의 호스트가 올바르지 않습니다")
	}
	if !isAcceptedDomain(domain) {
		return Identity{}, apperrors.Newf(apperrors.InvalidURL, "지원하지 않는 도메인입니다 (domain=%q)", domain)
	}

	code, ok := extractProductCode(u.Path)
	if !ok {
		return Identity{}, apperrors.Newf(apperrors.InvalidURL, "URL 경로에서 상품 코드를 찾을 수 없습니다 (path=%q)", u.Path)
	}

	return Identity{
		ProductCode: code,
		Domain:      domain,
		Language:    DefaultLanguage,
		URL:         rawURL,
	}, nil
}

// isAcceptedDomain 허용 도메인과 정확히 일치하거나 그 하위 도메인인 경우에만 true를 반환합니다.
func isAcceptedDomain(domain string) bool {
	for _, d := range AcceptedDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}

func extractProductCode(path string) (string, bool) {
	m := productCodePattern.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}
