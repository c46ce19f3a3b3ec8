package logging

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	sugar     = zap.NewNop().Sugar()
	debugMode bool
)

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file, and the stdlib log package (used by
// Bubble Tea and its components) is redirected there as well.
// level is a zap level name; empty means debug.
func SetupLogging(filename, level string) (cleanup func(), err error) {
	if filename == "" {
		sugar = zap.NewNop().Sugar()
		debugMode = false
		restore := zap.RedirectStdLog(zap.NewNop())
		return restore, nil
	}

	if level == "" {
		level = "debug"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{filename}
	cfg.ErrorOutputPaths = []string{filename}
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	restore := zap.RedirectStdLog(logger)

	sugar = logger.Sugar()
	debugMode = lvl.Enabled(zap.DebugLevel)

	cleanup = func() {
		_ = logger.Sync()
		restore()
		sugar = zap.NewNop().Sugar()
		debugMode = false
	}
	return cleanup, nil
}

// IsDebugMode reports whether debug output is being written.
func IsDebugMode() bool { return debugMode }

func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }
func Info(args ...any)                  { sugar.Info(args...) }
func Infof(format string, args ...any)  { sugar.Infof(format, args...) }
func Warnf(format string, args ...any)  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }
