package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBodyBytes 응답 본문을 읽을 때의 기본 최대 크기입니다. (상품 페이지는 보통 1-3MB)
const DefaultMaxBodyBytes = 16 * 1024 * 1024

// ReadBody 응답 본문을 Content-Type의 charset에 맞춰 UTF-8 문자열로 읽습니다.
// limit을 넘는 본문은 에러로 처리합니다.
func ReadBody(resp *http.Response, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.MalformedResponse, "응답 본문의 인코딩 변환에 실패했습니다")
	}

	var sb strings.Builder
	n, err := io.Copy(&sb, io.LimitReader(utf8Reader, limit+1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", apperrors.Wrap(err, apperrors.Timeout, "응답 본문을 읽는 중 시간이 초과되었습니다")
		}
		return "", apperrors.Wrap(err, apperrors.SourceUnavailable, "응답 본문을 읽는 중 연결이 끊어졌습니다")
	}
	if n > limit {
		return "", apperrors.Newf(apperrors.MalformedResponse, "응답 본문이 허용 크기(%d bytes)를 초과했습니다", limit)
	}

	return sb.String(), nil
}

// FetchPage url의 HTML 원문을 UTF-8 문자열로 가져옵니다.
func FetchPage(ctx context.Context, f Fetcher, url string) (string, error) {
	resp, err := Get(ctx, f, url)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.SourceUnavailable, fmt.Sprintf("페이지(%s) 요청 중 네트워크 에러가 발생했습니다", url))
	}
	defer drainAndCloseBody(resp.Body)

	if err := CheckResponseStatus(resp); err != nil {
		return "", err
	}

	return ReadBody(resp, DefaultMaxBodyBytes)
}

// ParseHTML HTML 문자열을 goquery 문서로 파싱합니다.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.MalformedResponse, "HTML 문서 파싱에 실패했습니다")
	}
	return doc, nil
}
