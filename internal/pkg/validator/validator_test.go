package validator_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/darkkaiser/zalando-scraper/internal/pkg/validator"
	go_validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Concurrent(t *testing.T) {
	t.Parallel()

	const routines = 50
	validators := make([]*go_validator.Validate, routines)

	var wg sync.WaitGroup
	wg.Add(routines)
	for i := 0; i < routines; i++ {
		go func(index int) {
			defer wg.Done()
			validators[index] = validator.Get()
		}(i)
	}
	wg.Wait()

	for i := 1; i < routines; i++ {
		assert.Same(t, validators[0], validators[i])
	}
}

type scrapeInput struct {
	URL      string   `validate:"required,http_url,max=20" korean:"상품 URL"`
	Sources  []string `validate:"omitempty,min=2" korean:"소스"`
	Mode     string   `validate:"omitempty,oneof=strict partial" korean:"모드"`
	Code     string   `validate:"omitempty,len=3" korean:"코드"`
	Attempts int      `validate:"gte=0,lte=5" korean:"시도횟수"`
	Tag      string   `validate:"omitempty,alpha"`
}

func TestFormatValidationError(t *testing.T) {
	t.Parallel()

	valid := scrapeInput{URL: "https://a.de/x"}

	tests := []struct {
		name   string
		mutate func(*scrapeInput)
		want   string
	}{
		{name: "필수", mutate: func(in *scrapeInput) { in.URL = "" }, want: "상품 URL는 필수입니다"},
		{name: "URL 형식", mutate: func(in *scrapeInput) { in.URL = "zalando" }, want: "상품 URL는 올바른 URL 형식이어야 합니다"},
		{name: "문자열 최대", mutate: func(in *scrapeInput) { in.URL = "https://zalando.co.uk/a" }, want: "상품 URL는 최대 20자까지 입력 가능합니다"},
		{name: "배열 최소", mutate: func(in *scrapeInput) { in.Sources = []string{"api"} }, want: "소스는 최소 2 이상이어야 합니다"},
		{name: "열거형", mutate: func(in *scrapeInput) { in.Mode = "lenient" }, want: "모드는 [strict partial] 중 하나여야 합니다"},
		{name: "문자열 길이", mutate: func(in *scrapeInput) { in.Code = "ab" }, want: "코드는 3자여야 합니다"},
		{name: "숫자 최대", mutate: func(in *scrapeInput) { in.Attempts = 6 }, want: "시도횟수는 최대 5까지 입력 가능합니다"},
		{name: "처리하지 않는 태그는 필드명 사용", mutate: func(in *scrapeInput) { in.Tag = "a1" }, want: "Tag 검증 실패: alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.mutate(&in)

			err := validator.Struct(in)
			require.Error(t, err)
			assert.Equal(t, tt.want, validator.FormatValidationError(err))
		})
	}

	assert.NoError(t, validator.Struct(valid))
}

func TestFormatValidationError_PlainError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validator.FormatValidationError(nil))
	assert.Equal(t, "boom", validator.FormatValidationError(errors.New("boom")))
}
