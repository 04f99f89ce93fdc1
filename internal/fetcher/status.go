package fetcher

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
)

const maxBodySnippetBytes = 1024

// HTTPStatusError 성공이 아닌 HTTP 상태 코드를 받았을 때의 상세 정보입니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	Header      http.Header
	BodySnippet string
	Cause       error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += " URL: " + e.URL
	}
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// CheckResponseStatus 2xx가 아닌 응답을 에러로 변환합니다.
//
//   - 404: NotFound (상품이 삭제되었거나 URL이 잘못됨)
//   - 그 외: SourceUnavailable
//
// 에러를 반환할 때 응답 본문 일부를 읽어 진단 정보로 포함하며, Body를 닫는 책임은 호출자에게 있습니다.
func CheckResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	statusErr := &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header.Clone(),
	}
	if resp.Request != nil {
		statusErr.URL = redactURL(resp.Request.URL)
	}
	if resp.Body != nil {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		statusErr.BodySnippet = string(snippet)
	}

	errType := apperrors.SourceUnavailable
	if resp.StatusCode == http.StatusNotFound {
		errType = apperrors.NotFound
	}

	return apperrors.Wrap(statusErr, errType, fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %s", resp.Status))
}
