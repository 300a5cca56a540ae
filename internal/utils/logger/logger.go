package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
)

// Logger is a small colored console logger tagged with the component name.
type Logger struct {
	component string
}

type level struct {
	name  string
	emoji string
	print func(format string, a ...interface{})
}

var (
	levelInfo    = level{"INFO", "ℹ️ ", color.Cyan}
	levelSuccess = level{"SUCCESS", "✅ ", color.Green}
	levelWarn    = level{"WARN", "⚠️ ", color.Yellow}
	levelError   = level{"ERROR", "❌ ", color.Red}
	levelDebug   = level{"DEBUG", "🔍 ", color.Magenta}
)

func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) log(lv level, msg string) {
	_, file, line, _ := runtime.Caller(2)
	lv.print("%s | %s | %s | %s:%d | %s | %s",
		lv.emoji,
		time.Now().Format("2006-01-02 15:04:05"),
		lv.name,
		filepath.Base(file),
		line,
		l.component,
		msg,
	)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(levelInfo, fmt.Sprintf(msg, args...))
}

func (l *Logger) Success(msg string, args ...interface{}) {
	l.log(levelSuccess, fmt.Sprintf(msg, args...))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(levelWarn, fmt.Sprintf(msg, args...))
}

// Error logs the message and returns it wrapped around err so call sites can
// log and propagate in one statement.
func (l *Logger) Error(msg string, err error, args ...interface{}) error {
	args = append(args, err)
	l.log(levelError, fmt.Sprintf(msg, args...))
	return fmt.Errorf("%s: %w", msg, err)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(levelDebug, fmt.Sprintf(msg, args...))
}
