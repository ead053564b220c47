// internal/cli/root.go
package tuxlaunch

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tuxai/tuxlaunch/internal/appconfig"
	"github.com/tuxai/tuxlaunch/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
// Invoked bare it behaves like `tuxlaunch launch`: ensure the environment,
// then hand off to the chat application.
var rootCmd = &cobra.Command{
	Use:   "tuxlaunch",
	Short: "tuxlaunch — launcher and terminal UI for the local Tux AI assistant",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ensureConfigLoaded()
		if err != nil {
			return err
		}

		for _, name := range []string{"debug"} {
			if cmd.Flags().Changed(name) {
				cfg.Debug = viper.GetBool(name)
			} else {
				_ = cmd.Flags().Set(name, strconv.FormatBool(cfg.Debug))
			}
		}
		for flag, target := range map[string]*string{
			"logFile": &cfg.LogFile,
			"envDir":  &cfg.EnvDir,
		} {
			if cmd.Flags().Changed(flag) {
				*target = viper.GetString(flag)
			}
		}

		currentConfig = cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLaunch(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("envDir", "", "path to the isolated runtime directory")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("envDir", rootCmd.PersistentFlags().Lookup("envDir"))
}

// ensureConfigLoaded reads the config file. A missing file is not an error:
// the launcher runs on defaults, matching the installer-first workflow where
// the config appears after `tuxlaunch install`.
func ensureConfigLoaded() (*appconfig.Config, error) {
	cfg, err := appconfig.Load(cfgFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &appconfig.Config{}, nil
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// getConfig returns the loaded application configuration for other commands.
func getConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return getConfig().Debug }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
