// Package config provides access to the global configuration shared by all fsentry commands. Flags
// are bound to viper by internal/config and read here through well-known keys.
package config

import (
	"sync"

	"github.com/fsentry/fsentry/pkg/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DebugKey           = "debug"
	PrintJsonKey       = "json"
	PrintJsonPrettyKey = "json-pretty"
	LogTypeKey         = "log.type"
	LogFileKey         = "log.file"
	LogLevelKey        = "log.level"
	LogMaxSizeKey      = "log.max-size"
	LogNumRotatedKey   = "log.num-rotated-files"
	LogDeveloperKey    = "log.developer"
)

var (
	logOnce   sync.Once
	globalLog *logger.Logger
	logErr    error
)

// GetLogger returns the process-wide logger, initializing it from the log.* configuration on first
// use. If initialization fails a no-op logger is returned along with the error, so callers that
// ignore the error still hold a usable logger.
func GetLogger() (*logger.Logger, error) {
	logOnce.Do(func() {
		globalLog, logErr = logger.New(logConfigFromViper())
		if logErr != nil {
			globalLog = &logger.Logger{Logger: zap.NewNop()}
		}
	})
	return globalLog, logErr
}

// logConfigFromViper reads each log.* key individually. Viper does not assemble a nested "log" map
// from pflag-bound dotted keys, so unmarshalling the "log" subtree would silently yield a zero
// config and ignore every flag.
func logConfigFromViper() logger.Config {
	return logger.Config{
		Type:            viper.GetString(LogTypeKey),
		File:            viper.GetString(LogFileKey),
		Level:           int8(viper.GetInt(LogLevelKey)),
		MaxSize:         viper.GetInt(LogMaxSizeKey),
		NumRotatedFiles: viper.GetInt(LogNumRotatedKey),
		Developer:       viper.GetBool(LogDeveloperKey),
	}
}

// Cleanup flushes any buffered log entries. Intended to be deferred from main.
func Cleanup() {
	if globalLog != nil {
		_ = globalLog.Sync()
	}
}
