package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/merkledrop/claim-gateway/internal/config"
	"github.com/merkledrop/claim-gateway/pkg/logger"
	"github.com/merkledrop/claim-gateway/pkg/logger/slogx"
)

var rootCmd = &cobra.Command{
	Use:  "claim-gateway",
	Long: `Gateway and CLI for discovering, checking, and claiming merkle-distributor airdrops on Solana`,
}

func init() {
	var configFile string

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("network", "mainnet", "network to connect to, E.g. `mainnet` or `devnet`")

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		conf := config.Parse(configFile)

		if err := logger.Init(conf.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", conf.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	rootCmd.AddCommand(
		NewRunCommand(),
		NewCheckCommand(),
		NewClaimCommand(),
		NewVersionCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Fatal("Failed to execute command", slogx.Error(err))
	}
}
