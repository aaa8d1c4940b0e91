package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "rural-assist",
	Short: "Multilingual assistant for rural citizens",
	Long: `rural-assist answers questions about government schemes, services and
representatives in Hindi, English and Telugu, and collects citizen surveys.

It runs either as an HTTP API (serve) or as a set of Zeebe job workers (worker).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: configs/config.yaml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
}
