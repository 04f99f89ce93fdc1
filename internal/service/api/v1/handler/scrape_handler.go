package handler

import (
	"net/http"

	"github.com/darkkaiser/zalando-scraper/internal/pkg/validator"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/constants"
	"github.com/darkkaiser/zalando-scraper/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// ScrapeProductHandler godoc
// @Summary 상품 수집
// @Description Zalando 상품 URL 하나를 받아 구조화 API, 렌더링 페이지, 원본 마크업 세 데이터 소스에서
// @Description 동시에 수집한 뒤 하나의 상품 레코드로 병합하여 반환합니다.
// @Description
// @Description 수집에 실패하면 success=false 봉투와 함께 400을 반환합니다.
// @Description metadata.source_errors에 소스별 실패 원인이 담깁니다.
// @Description
// @Description ## 사용 예시 (로컬 환경)
// @Description ```bash
// @Description curl -X POST "http://localhost:8001/api/v1/scrape-product" \
// @Description   -H "Content-Type: application/json" \
// @Description   -d '{"url":"https://www.zalando.co.uk/nike-sportswear-air-max-trainers-ni112o0jf-a11.html"}'
// @Description ```
// @Tags Product
// @Accept json
// @Produce json
// @Param request body request.ScrapeRequest true "수집할 상품 URL"
// @Success 200 {object} scrape.Response "수집 성공"
// @Failure 400 {object} scrape.Response "수집 실패 (잘못된 URL, 데이터 소스 오류)"
// @Failure 415 {object} response.ErrorResponse "지원하지 않는 Content-Type"
// @Failure 429 {object} response.ErrorResponse "요청 제한 초과"
// @Router /api/v1/scrape-product [post]
func (h *Handler) ScrapeProductHandler(c echo.Context) error {
	// 1. 요청 바인딩
	req := new(request.ScrapeRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}

	// 2. 입력 검증
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	// 3. 수집
	resp := h.scraper.Scrape(c.Request().Context(), req.URL)

	fields := applog.Fields{
		"url":     req.URL,
		"success": resp.Success,
	}
	if resp.Metadata != nil {
		fields["product_code"] = resp.Metadata.ProductCode
		fields["data_sources"] = resp.Metadata.DataSources
	}
	if !resp.Success {
		fields["error"] = resp.Error
	}
	h.log(c).WithFields(fields).Info(constants.LogMsgScrapeDone)

	// 4. 응답
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusBadRequest
	}

	return c.JSON(status, resp)
}
