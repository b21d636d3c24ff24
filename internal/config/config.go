package config

import (
	"strings"

	"github.com/fsentry/fsentry/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// This package handles the global command line tool config - the global flags and environment
// variable bindings.

// InitGlobalFlags defines all the global flags and binds them to viper.
func InitGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(config.DebugKey, false, "Print additional details that are normally hidden.")

	cmd.PersistentFlags().Bool(config.PrintJsonKey, false, "Print reports normally rendered using a table as JSON instead.")
	cmd.PersistentFlags().Bool(config.PrintJsonPrettyKey, false, "Print reports normally rendered using a table as pretty JSON instead.")
	cmd.MarkFlagsMutuallyExclusive(config.PrintJsonKey, config.PrintJsonPrettyKey)

	cmd.PersistentFlags().String(config.LogTypeKey, "stderr", "Where log messages should be sent ('stderr', 'stdout', 'logfile').")
	cmd.PersistentFlags().String(config.LogFileKey, "/var/log/fsentry/fsentry.log", "The path to the desired log file when log.type is 'logfile' (if needed the directory and all parent directories will be created).")
	cmd.PersistentFlags().Int8(config.LogLevelKey, 1, "Adjust the logging level (0=Fatal, 1=Error, 2=Warn, 3=Info, 4+5=Debug).")
	cmd.PersistentFlags().Int(config.LogMaxSizeKey, 1000, "When log.type is 'logfile' the maximum size of the log.file in megabytes before it is rotated.")
	cmd.PersistentFlags().Int(config.LogNumRotatedKey, 5, "When log.type is 'logfile' the maximum number of old log.file(s) to keep when log.max-size is reached and the log is rotated.")
	cmd.PersistentFlags().Bool(config.LogDeveloperKey, false, "Enable logging at DebugLevel and above and print stack traces at WarnLevel and above.")
	cmd.PersistentFlags().MarkHidden(config.LogDeveloperKey)

	// Environment variables should start with FSENTRY_
	viper.SetEnvPrefix("fsentry")
	// Environment variables cannot use "-" or ".", replace with "_"
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Bind all persistent pflags to viper
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindEnv(flag.Name)
		viper.BindPFlag(flag.Name, flag)
	})
}

func Cleanup() {
	config.Cleanup()
}
