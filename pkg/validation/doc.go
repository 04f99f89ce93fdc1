// Package validation 설정 파일과 API 요청 등 외부 입력값의 형식을 검사하는 함수를 제공합니다.
//
// 모든 함수는 상태를 갖지 않으며 동시에 호출해도 안전합니다.
package validation
