package config_test

import (
	"os"
	"path/filepath"
	"testing"

	globalconfig "github.com/fsentry/fsentry/internal/config"
	"github.com/fsentry/fsentry/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Viper does not build a nested "log" map from the pflag-bound dotted keys, so the logger config
// has to be read key by key. These tests go through the real flag binding to make sure values set
// on the command line actually reach the logger.

func TestLogFlagsReachLoggerConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "fsentry"}
	globalconfig.InitGlobalFlags(cmd)
	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--log.level=4", "--log.type=stdout"}))

	cfg := config.LogConfigFromViper()
	assert.Equal(t, "stdout", cfg.Type)
	assert.EqualValues(t, 4, cfg.Level)
	// Flags left unset fall back to their defaults.
	assert.Equal(t, "/var/log/fsentry/fsentry.log", cfg.File)
	assert.Equal(t, 1000, cfg.MaxSize)
	assert.Equal(t, 5, cfg.NumRotatedFiles)
	assert.False(t, cfg.Developer)
}

func TestGetLoggerUsesBoundFlags(t *testing.T) {
	// GetLogger initializes exactly once per process, so this is the only test that may call it.
	cmd := &cobra.Command{Use: "fsentry"}
	globalconfig.InitGlobalFlags(cmd)
	logFile := filepath.Join(t.TempDir(), "logs", "fsentry.log")
	require.NoError(t, cmd.PersistentFlags().Parse([]string{
		"--log.type=logfile",
		"--log.file=" + logFile,
		"--log.level=3",
	}))

	log, err := config.GetLogger()
	require.NoError(t, err)
	log.Info("writing to the configured log file")
	config.Cleanup()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "writing to the configured log file")
}
