package logger

import (
	"fmt"
	"kairopay/internal/config"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
)

type Logger struct{}

func Init(config *config.Config) Logger {
	slogOpts := &slog.HandlerOptions{}

	if !config.Prod_env {
		slogOpts.Level = slog.LevelDebug
	}

	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   true,
	}

	logger := slog.New(devslog.NewHandler(os.Stdout, opts))

	slog.SetDefault(logger)

	return Logger{}
}

// example Info("webhook sent", LS_WEBHOOKS, false, "url", url)
func (l Logger) Info(message string, logStream Logstream, isTemplate bool, args ...any) {
	skip := callerSkip(isTemplate)
	_, file, line, _ := runtime.Caller(skip)
	printLog(LL_INFO, logStream, message, file, line, args...)
}

func (l Logger) Error(message string, logStream Logstream, isTemplate bool, args ...any) {
	skip := callerSkip(isTemplate)
	_, file, line, _ := runtime.Caller(skip)
	printLog(LL_ERROR, logStream, message, file, line, args...)
}

func (l Logger) Fatal(message string, logStream Logstream, isTemplate bool, args ...any) {
	skip := callerSkip(isTemplate)
	_, file, line, _ := runtime.Caller(skip)
	printLog(LL_FATAL, logStream, message, file, line, args...)
}

func (l Logger) Debug(message string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	args = append(args, "source", file+":"+strconv.Itoa(line))
	slog.Debug(message, args...)
}

// templates wrap the level methods, adding one stack frame
func callerSkip(isTemplate bool) int {
	if isTemplate {
		return 2
	}
	return 1
}

func printLog(ll LogLevel, ls Logstream, message string, file string, line int, args ...any) {
	args = append(args, "stream", ls.ToString(), "source", file+":"+strconv.Itoa(line))
	switch ll {
	case LL_ERROR, LL_FATAL:
		slog.Error(message, args...)
	case LL_INFO:
		slog.Info(message, args...)
	case LL_DEBUG:
		slog.Debug(message, args...)
	}
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

// GenErrorId returns an opaque id that ties a user-facing error envelope
// to its log line.
func GenErrorId() string {
	uuid, err := uuid.NewRandom()
	if err != nil {
		return NA
	}
	return uuid.String()
}
