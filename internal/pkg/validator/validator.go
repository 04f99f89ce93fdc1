// Package validator HTTP 요청 모델의 구조체 태그 검증과 한국어 에러 메시지 변환을 제공합니다.
//
// 필드명은 `korean` 태그 값을 사용하며, 태그가 없으면 구조체 필드명을 그대로 사용합니다.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get 초기화된 전역 validator 인스턴스를 반환합니다.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())

		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})
	})

	return instance
}

// Struct 구조체의 validate 태그를 기반으로 검증을 수행합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError validator 에러를 사용자 친화적인 한글 메시지로 변환합니다.
// 여러 검증 에러가 있을 경우 첫 번째 에러만 반환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	param := fieldErr.Param()
	isString := fieldErr.Kind() == reflect.String

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", field)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", field, param)
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", field, param)
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", field, param)
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", field, param)
	case "len":
		if isString {
			return fmt.Sprintf("%s는 %s자여야 합니다", field, param)
		}
		return fmt.Sprintf("%s는 갯수가 %s개여야 합니다", field, param)
	case "url", "http_url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", field)
	case "oneof":
		return fmt.Sprintf("%s는 [%s] 중 하나여야 합니다", field, param)
	default:
		return fmt.Sprintf("%s 검증 실패: %s", field, fieldErr.Tag())
	}
}
