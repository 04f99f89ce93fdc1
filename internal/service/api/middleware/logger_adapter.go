package middleware

import (
	"io"

	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger Echo의 log.Logger 인터페이스를 애플리케이션 로거(logrus)로 연결하는 어댑터입니다.
// Echo 내부(서버 시작 배너, 바인딩 경고 등)에서 남기는 로그도 같은 포맷과 출력으로 기록됩니다.
type Logger struct {
	*applog.Logger
}

var toEchoLevel = map[applog.Level]log.Lvl{
	applog.DebugLevel: log.DEBUG,
	applog.InfoLevel:  log.INFO,
	applog.WarnLevel:  log.WARN,
	applog.ErrorLevel: log.ERROR,
}

// Output 현재 출력 Writer를 반환합니다.
func (l Logger) Output() io.Writer {
	return l.Logger.Out
}

func (l Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

func (l Logger) Prefix() string {
	return ""
}

func (l Logger) SetPrefix(string) {
	// Echo의 Prefix 기능은 사용하지 않음
}

// Level 애플리케이션 로그 레벨을 Echo 로그 레벨로 변환합니다.
// Echo에 대응하는 레벨이 없으면(Panic, Fatal, Trace) OFF를 반환합니다.
func (l Logger) Level() log.Lvl {
	if lvl, ok := toEchoLevel[l.Logger.Level]; ok {
		return lvl
	}
	return log.OFF
}

// SetLevel Echo 로그 레벨을 애플리케이션 로그 레벨로 변환하여 설정합니다.
// log.OFF는 대응하는 레벨이 없으므로 무시합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	for appLevel, echoLevel := range toEchoLevel {
		if echoLevel == lvl {
			l.Logger.SetLevel(appLevel)
			return
		}
	}
}

func (l Logger) SetHeader(string) {
	// Echo의 Header 기능은 사용하지 않음
}

// 아래 메서드들은 Echo의 Logger 인터페이스 요구사항을 충족하기 위해
// Logger의 해당 메서드로 단순 위임합니다.

func (l Logger) Print(i ...any) {
	l.Logger.Print(i...)
}

func (l Logger) Printf(format string, args ...any) {
	l.Logger.Printf(format, args...)
}

func (l Logger) Printj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Print()
}

func (l Logger) Debug(i ...any) {
	l.Logger.Debug(i...)
}

func (l Logger) Debugf(format string, args ...any) {
	l.Logger.Debugf(format, args...)
}

func (l Logger) Debugj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Debug()
}

func (l Logger) Info(i ...any) {
	l.Logger.Info(i...)
}

func (l Logger) Infof(format string, args ...any) {
	l.Logger.Infof(format, args...)
}

func (l Logger) Infoj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Info()
}

func (l Logger) Warn(i ...any) {
	l.Logger.Warn(i...)
}

func (l Logger) Warnf(format string, args ...any) {
	l.Logger.Warnf(format, args...)
}

func (l Logger) Warnj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Warn()
}

func (l Logger) Error(i ...any) {
	l.Logger.Error(i...)
}

func (l Logger) Errorf(format string, args ...any) {
	l.Logger.Errorf(format, args...)
}

func (l Logger) Errorj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Error()
}

func (l Logger) Fatal(i ...any) {
	l.Logger.Fatal(i...)
}

func (l Logger) Fatalf(format string, args ...any) {
	l.Logger.Fatalf(format, args...)
}

func (l Logger) Fatalj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Fatal()
}

func (l Logger) Panic(i ...any) {
	l.Logger.Panic(i...)
}

func (l Logger) Panicf(format string, args ...any) {
	l.Logger.Panicf(format, args...)
}

func (l Logger) Panicj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Panic()
}
