package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 시스템 또는 인프라 오류 (디스크, 네트워크 등)
	System

	// InvalidInput 잘못된 입력값 (요청 본문, 설정값 등)
	InvalidInput

	// InvalidURL 상품 URL이 http(s)가 아니거나, 지원하지 않는 도메인이거나, 상품 코드를 추출할 수 없음
	InvalidURL

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// Timeout 작업 시간 초과
	Timeout

	// SourceUnavailable 데이터 소스(구조화 API, 렌더링 페이지, 원본 마크업)에 도달할 수 없거나 재시도를 모두 소진함
	SourceUnavailable

	// MalformedResponse 소스 응답에 필수 구조(상품 노드, 캐시 블록 등)가 없음
	MalformedResponse

	// CacheKeyNotFound 임베디드 캐시에 판매자/재고 조회 키가 존재하지 않음
	CacheKeyNotFound

	// Unexpected 위 분류에 속하지 않는 예기치 못한 실패 (패닉 포함)
	Unexpected
)

var errorTypeNames = [...]string{
	Unknown:           "Unknown",
	Internal:          "Internal",
	System:            "System",
	InvalidInput:      "InvalidInput",
	InvalidURL:        "InvalidURL",
	NotFound:          "NotFound",
	Timeout:           "Timeout",
	SourceUnavailable: "SourceUnavailable",
	MalformedResponse: "MalformedResponse",
	CacheKeyNotFound:  "CacheKeyNotFound",
	Unexpected:        "Unexpected",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
