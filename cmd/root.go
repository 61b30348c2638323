package cmd

import (
	"go/types"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/stellar/otp-prober/cmd/utils"
	"github.com/stellar/otp-prober/internal/monitor"
)

// globalOptions is a variable that holds the global CLI options that can be
// applied to any command or subcommand.
var globalOptions cmdUtils.GlobalOptionsType

func rootCmd() *cobra.Command {
	configOpts := config.ConfigOptions{
		{
			Name:           "log-level",
			Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
			OptType:        types.String,
			FlagDefault:    "TRACE",
			ConfigKey:      &globalOptions.LogLevel,
			CustomSetValue: cmdUtils.SetConfigOptionLogLevel,
			Required:       true,
		},
		{
			Name:        "environment",
			Usage:       `The environment where the application is running. Example: "development", "lab", "ci".`,
			OptType:     types.String,
			FlagDefault: "development",
			ConfigKey:   &globalOptions.Environment,
			Required:    true,
		},
		{
			Name:      "sentry-dsn",
			Usage:     "The DSN (client key) of the Sentry project. Only used when crash-tracker-type is SENTRY.",
			OptType:   types.String,
			ConfigKey: &globalOptions.SentryDSN,
			Required:  false,
		},
		{
			Name:           "crash-tracker-type",
			Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
			OptType:        types.String,
			FlagDefault:    "DRY_RUN",
			ConfigKey:      &globalOptions.CrashTrackerType,
			CustomSetValue: cmdUtils.SetConfigOptionCrashTrackerType,
			Required:       true,
		},
	}

	rootCmd := &cobra.Command{
		Use:     "otp-prober",
		Short:   "OTP reset-pin prober",
		Long:    "Walks the OTP range of a local reset-pin endpoint to check whether it can be guessed without being throttled. Ships a stub endpoint to probe against.",
		Version: globalOptions.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configOpts.Require()
			err := configOpts.SetValues()
			if err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}
			log.Debug("Version: ", globalOptions.Version)
			log.Debug("GitCommit: ", globalOptions.GitCommit)
		},
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				log.Fatalf("Error calling help command: %s", err.Error())
			}
		},
	}

	// Consumed by cmdUtils.LoadEnvFile before the command runs.
	rootCmd.PersistentFlags().String(cmdUtils.EnvFileFlagName, "", "Path to a dotenv file to load. Defaults to the ENV_FILE env var, then ./.env")

	err := configOpts.Init(rootCmd)
	if err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return rootCmd
}

// SetupCLI sets up the CLI and returns the root command with the subcommands
// attached.
func SetupCLI(version, gitCommit string) *cobra.Command {
	globalOptions.Version = version
	globalOptions.GitCommit = gitCommit
	rootCmd := rootCmd()

	rootCmd.AddCommand((&ProbeCommand{}).Command(&ProbeService{}, &monitor.MonitorService{}))
	rootCmd.AddCommand((&StubServerCommand{}).Command(&ServerService{}, &monitor.MonitorService{}))

	return rootCmd
}
