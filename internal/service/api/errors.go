package api

import (
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
)

var (
	// ErrScraperNotInitialized 서비스 시작 시 핵심 의존성인 Scraper가 초기화되지 않았을 때 반환하는 에러입니다.
	ErrScraperNotInitialized = apperrors.New(apperrors.Internal, "Scraper 객체가 초기화되지 않았습니다")
)
