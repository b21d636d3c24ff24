package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config determines where and how log messages are emitted. It is populated from the log.* flags
// and environment variables and should not change after the logger is created.
type Config struct {
	// Where to send log messages ("stderr", "stdout", or "logfile").
	Type string
	// Path of the log file when Type is "logfile". Parent directories are created as needed.
	File string
	// 0=Fatal, 1=Error, 2=Warn, 3=Info, 4+5=Debug.
	Level int8
	// Maximum size of the log file in megabytes before it is rotated.
	MaxSize int
	// Number of rotated log files to keep.
	NumRotatedFiles int
	// Developer enables debug logging with stack traces regardless of the other settings.
	Developer bool
}

// Logger wraps a zap.Logger so callers don't need to depend on zap directly to pass the logger
// around, and so additional helpers can be attached without shadowing zap's methods.
type Logger struct {
	*zap.Logger
}

// New initializes a Logger from the provided Config. The caller is responsible for calling Sync()
// before the process exits.
func New(cfg Config) (*Logger, error) {
	if cfg.Developer {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return &Logger{Logger: l}, nil
	}

	var sink zapcore.WriteSyncer
	var encoder zapcore.Encoder
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	switch cfg.Type {
	case "stderr", "":
		sink = zapcore.Lock(os.Stderr)
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "stdout":
		sink = zapcore.Lock(os.Stdout)
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "logfile":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("unable to create directory for log file %s: %w", cfg.File, err)
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.NumRotatedFiles,
		})
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("unknown log type %q (expected stderr, stdout, or logfile)", cfg.Type)
	}

	core := zapcore.NewCore(encoder, sink, levelFromConfig(cfg.Level))
	return &Logger{Logger: zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))}, nil
}

func levelFromConfig(level int8) zapcore.Level {
	switch {
	case level <= 0:
		return zapcore.FatalLevel
	case level == 1:
		return zapcore.ErrorLevel
	case level == 2:
		return zapcore.WarnLevel
	case level == 3:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
