package scheduler

import (
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
)

// NewErrInvalidCronSpec Cron 표현식이 올바르지 않아 작업 등록에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrInvalidCronSpec(jobName, spec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "작업 등록 실패: 잘못된 Cron 표현식입니다 (Job=%s, Spec='%s')", jobName, spec)
}
