package config

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator JSON 필드명으로 에러를 보고하고 커스텀 규칙이 등록된 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// validate 로드된 설정의 정합성을 섹션 단위로 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := c.API.validate(v); err != nil {
		return err
	}
	if err := checkStruct(v, c.Structured, "structured"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Rendered, "rendered"); err != nil {
		return err
	}
	if err := checkStruct(v, c.RawMarkup, "raw_markup"); err != nil {
		return err
	}

	return nil
}

func (c *APIConfig) validate(v *validator.Validate) error {
	if len(c.CORS.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}
	for _, origin := range c.CORS.AllowOrigins {
		if origin == "*" && len(c.CORS.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	if err := checkStruct(v, c, "api"); err != nil {
		return err
	}

	if err := validation.ValidateCronExpression(c.LimiterCleanupSpec); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "요청 제한기 정리 주기(api.limiter_cleanup_spec) 설정이 유효하지 않습니다")
	}

	return nil
}

// checkStruct 구조체를 검증하고 첫 번째 위반 항목을 사람이 읽을 수 있는 메시지로 변환합니다.
func checkStruct(v *validator.Validate, s any, section string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !apperrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 설정 검증 중 알 수 없는 오류가 발생했습니다", section))
	}

	fieldErr := validationErrors[0]
	field := fieldPath(fieldErr.Namespace())

	switch fieldErr.Tag() {
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fieldErr.Value()))
	case "file":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s.%s에 지정된 파일을 찾을 수 없습니다: '%v'", section, field, fieldErr.Value()))
	case "gtefield":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s.%s 값은 %s 이상이어야 합니다", section, field, fieldErr.Param()))
	}

	if fieldErr.Param() != "" {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s.%s 설정이 올바르지 않습니다: '%v' (조건: %s=%s)", section, field, fieldErr.Value(), fieldErr.Tag(), fieldErr.Param()))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s.%s 설정이 올바르지 않습니다 (조건: %s)", section, field, fieldErr.Tag()))
}

// fieldPath "RenderedConfig.phrases.out_of_stock[0]"에서 최상위 구조체 이름을 떼어낸 경로를 반환합니다.
func fieldPath(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}
