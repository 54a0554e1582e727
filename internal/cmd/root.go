package cmd

import (
	"context"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/renolab/renolab/internal/config"
	"github.com/renolab/renolab/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// appViper holds defaults, the config file and the environment once
	// initConfig has run.
	appViper *viper.Viper

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Renovation estimators and the renolab site API",
	Long: `renolab estimates paint, tiles, wallpaper, underfloor heating, ventilation
and budgets, and serves the same estimators over a rate-limited HTTP API.

Use the subcommands to perform specific operations.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Disable global telemetry so config loading does not emit metrics to
	// stdout. serve installs the Prometheus-backed system later.
	if sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: false}); err == nil {
		telemetry.SetGlobalSystem(sys)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/renolab/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}

// initConfig builds the viper instance from defaults, the config file and
// RENOLAB_* environment variables.
func initConfig() {
	observability.InitCLILogger(config.AppName, verbose)

	v, err := config.NewViper(cfgFile)
	if err != nil {
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to read configuration", err)
	}

	if used := v.ConfigFileUsed(); used != "" {
		observability.CLILogger.Debug("Using config file", zap.String("path", used))
	} else {
		observability.CLILogger.Debug("No config file found, using defaults and environment variables")
	}

	bindServeFlags(v)
	appViper = v
}

// loadConfig decodes the effective configuration.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, appViper)
	return cfg, withExitCode(foundry.ExitConfigInvalid, err)
}
