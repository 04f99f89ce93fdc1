package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobalState 전역 로거 상태를 초기화합니다. 이 파일의 테스트는 병렬로 실행하지 않습니다.
func resetGlobalState() {
	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil
	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
}

func TestSetup_CreatesFileChannels(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	dir := t.TempDir()
	cl, err := Setup(Options{
		Name:              "scraper",
		Dir:               dir,
		Level:             DebugLevel,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	})
	require.NoError(t, err)

	logrus.Info("메인")
	logrus.Error("치명")
	logrus.Debug("상세")
	require.NoError(t, cl.Close())

	mainLog, err := os.ReadFile(filepath.Join(dir, "scraper.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "메인")
	assert.Contains(t, string(mainLog), "치명")
	assert.NotContains(t, string(mainLog), "상세")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "scraper.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "치명")
	assert.NotContains(t, string(criticalLog), "메인")

	verboseLog, err := os.ReadFile(filepath.Join(dir, "scraper.verbose.log"))
	require.NoError(t, err)
	assert.Contains(t, string(verboseLog), "상세")
}

func TestSetup_RepeatCallReturnsFirstResult(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	first, err := Setup(Options{Name: "scraper", Dir: t.TempDir()})
	require.NoError(t, err)
	defer first.Close()

	second, err := Setup(Options{Name: "other"})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSetup_InvalidOptions(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	_, err := Setup(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "유효하지 않은 로그 설정")

	_, err = Setup(Options{Name: "scraper", Dir: t.TempDir()})
	assert.Error(t, err, "최초 실패 결과가 유지되어야 합니다")
}
