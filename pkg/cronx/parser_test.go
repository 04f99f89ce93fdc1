package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "6필드 (초 포함)", spec: "0 */10 * * * *"},
		{name: "Descriptor @every", spec: "@every 10m"},
		{name: "Descriptor @hourly", spec: "@hourly"},
		{name: "5필드는 미지원", spec: "*/10 * * * *", wantErr: true},
		{name: "범위 초과", spec: "0 61 * * * *", wantErr: true},
		{name: "빈 문자열", spec: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Cron 표현식 파싱 실패")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStandardParser_Next(t *testing.T) {
	t.Parallel()

	schedule, err := StandardParser().Parse("30 0 * * * *")
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 10, 0, 30, 0, time.UTC), schedule.Next(base))
}
