package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	err := New(InvalidURL, "Invalid Zalando product URL")

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, InvalidURL, appErr.Type())
	assert.Equal(t, "Invalid Zalando product URL", appErr.Message())
	assert.Equal(t, "[InvalidURL] Invalid Zalando product URL", err.Error())
	require.NotEmpty(t, appErr.Stack())
	assert.Equal(t, "errors_test.go", appErr.Stack()[0].File, "첫 프레임은 에러를 생성한 위치여야 합니다")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil 에러는 nil을 반환", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, Wrap(nil, Internal, "x"))
		assert.Nil(t, Wrapf(nil, Internal, "x %d", 1))
	})

	t.Run("원인 에러를 체인에 유지", func(t *testing.T) {
		t.Parallel()

		cause := context.DeadlineExceeded
		err := Wrapf(cause, SourceUnavailable, "카드 조회 실패 (시도 %d회)", 3)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, cause, RootCause(err))
		assert.Contains(t, err.Error(), "카드 조회 실패 (시도 3회)")
	})
}

func TestIs_UnderlyingType(t *testing.T) {
	t.Parallel()

	inner := New(CacheKeyNotFound, "stock key")
	outer := Wrap(fmt.Errorf("wrapped: %w", inner), Unexpected, "raw markup")

	assert.True(t, Is(outer, CacheKeyNotFound))
	assert.True(t, Is(outer, Unexpected))
	assert.False(t, Is(outer, InvalidURL))
	assert.Equal(t, CacheKeyNotFound, UnderlyingType(outer))
	assert.Equal(t, Unknown, UnderlyingType(errors.New("plain")))
	assert.Equal(t, Unknown, UnderlyingType(nil))
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"일반 에러", errors.New("boom"), "boom"},
		{"단일 AppError", New(MalformedResponse, "product node missing"), "product node missing"},
		{"체인", Wrap(New(SourceUnavailable, "all retries failed"), SourceUnavailable, "card query"), "card query: all retries failed"},
		{"외부 원인", Wrap(errors.New("dial tcp"), System, "homepage"), "homepage: dial tcp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	err := Wrap(errors.New("connection refused"), SourceUnavailable, "GraphQL 요청 실패")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "[SourceUnavailable] GraphQL 요청 실패")
	assert.Contains(t, verbose, "Stack trace:")
	assert.Contains(t, verbose, "Caused by:")
	assert.Contains(t, verbose, "connection refused")
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SourceUnavailable", SourceUnavailable.String())
	assert.Equal(t, "Unexpected", Unexpected.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
	assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
}
