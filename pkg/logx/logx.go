package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which messages are emitted.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	level  atomic.Int32
	logger = log.New(os.Stdout, "", log.LstdFlags)
)

func init() {
	level.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that gets logged.
func SetLevel(l Level) { level.Store(int32(l)) }

// SetOutput redirects log output (tests use this to silence logs).
func SetOutput(l *log.Logger) { logger = l }

func enabled(l Level) bool { return int32(l) >= level.Load() }

func output(prefix, msg string) {
	logger.Output(3, prefix+" "+msg)
}

func Debug(args ...any) {
	if enabled(LevelDebug) {
		output("DEBUG", fmt.Sprint(args...))
	}
}

func Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		output("DEBUG", fmt.Sprintf(format, args...))
	}
}

func Info(args ...any) {
	if enabled(LevelInfo) {
		output("INFO", fmt.Sprint(args...))
	}
}

func Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		output("INFO", fmt.Sprintf(format, args...))
	}
}

func Warn(args ...any) {
	if enabled(LevelWarn) {
		output("WARN", fmt.Sprint(args...))
	}
}

func Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		output("WARN", fmt.Sprintf(format, args...))
	}
}

func Error(args ...any) {
	if enabled(LevelError) {
		output("ERROR", fmt.Sprint(args...))
	}
}

func Errorf(format string, args ...any) {
	if enabled(LevelError) {
		output("ERROR", fmt.Sprintf(format, args...))
	}
}

func Fatalf(format string, args ...any) {
	output("FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}
