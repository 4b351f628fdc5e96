package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel maps LOG_LEVEL values; unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger ghi log qua package log, tag theo màu nếu bật
type DefaultLogger struct {
	level  Level
	out    *log.Logger
	colors bool
}

// NewDefaultLogger tạo một instance mới của DefaultLogger
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewLogger(os.Stdout, level, true)
}

func NewLogger(w io.Writer, level Level, colors bool) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		out:    log.New(w, "", log.LstdFlags),
		colors: colors,
	}
}

func (l *DefaultLogger) tag(name string, attr color.Attribute) string {
	if !l.colors {
		return "[" + name + "]"
	}
	return color.New(attr, color.Bold).Sprintf("[%s]", name)
}

func (l *DefaultLogger) write(level Level, tag, format string, v ...interface{}) {
	if l.level > level {
		return
	}
	l.out.Print(tag + " " + fmt.Sprintf(format, v...))
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.write(InfoLevel, l.tag("INFO", color.FgGreen), format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.write(WarnLevel, l.tag("WARN", color.FgYellow), format, v...)
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.write(ErrorLevel, l.tag("ERROR", color.FgRed), format, v...)
}

// Debug log debug
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.write(DebugLevel, l.tag("DEBUG", color.FgCyan), format, v...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
