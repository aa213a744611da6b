// Package logger 基于 zerolog 提供结构化日志
// 根 Logger 由配置创建，各子系统通过 Sub 派生带 subsystem 字段的子 Logger
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger 包装 zerolog.Logger
type Logger struct {
	zl zerolog.Logger
}

// New 创建根 Logger
// 参数:
//   - w: 输出目标，为 nil 时输出到 stderr 的控制台格式
//   - level: 日志级别 trace/debug/info/warn/error/fatal/silent
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	zl := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	return &Logger{zl: zl}
}

// FromConfig 根据 log.level / log.format 创建根 Logger
// format 为 console 时使用人类可读格式，其余一律输出 JSON
func FromConfig(level, format string) *Logger {
	if strings.EqualFold(format, "console") || strings.EqualFold(format, "text") {
		return New(nil, level)
	}
	return New(os.Stdout, level)
}

// Nop 返回丢弃所有输出的 Logger，测试中使用
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Sub 派生带 subsystem 字段的子 Logger
func (l *Logger) Sub(subsystem string) *Logger {
	return &Logger{zl: l.zl.With().Str("subsystem", subsystem).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// WithLevel 按指定级别记录
func (l *Logger) WithLevel(level zerolog.Level) *zerolog.Event { return l.zl.WithLevel(level) }

// Zerolog 返回底层 zerolog.Logger
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }

// Printf 实现 gorm logger.Writer，SQL 日志以 debug 级别输出
func (l *Logger) Printf(format string, args ...interface{}) {
	l.zl.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
