package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/service/inspect"
	"github.com/oshokin/door-guard/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel is the minimum level written to stderr.
	logLevel string
	// address overrides control.maintenance_addr.
	address string
	// watch keeps printing the status.
	watch bool
	// interval is the watch polling interval.
	interval time.Duration

	// rootCmd represents the base command for the maintenance client.
	rootCmd = &cobra.Command{
		Use:   "door-inspect",
		Short: "Inspect and adjust a running Control node.",
		Long: `Talks to the maintenance gRPC API of a running Control node.

The API address is read from control.maintenance_addr in the configuration file or given
with --address. Every request is tagged with the current user and hostname.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print the Control node status as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return inspect.RunStatus(ctx, &inspect.Options{
				ConfigPath: configPath,
				Address:    address,
				Watch:      watch,
				Interval:   interval,
				Out:        cmd.OutOrStdout(),
			})
		},
	}

	occupancyCmd = &cobra.Command{
		Use:       "occupancy clear|present",
		Short:     "Override the simulated occupancy sensor.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"clear", "present"},
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &inspect.Options{
				ConfigPath: configPath,
				Address:    address,
			}

			return inspect.RunOccupancy(ctx, options, args[0] == "present")
		},
	}
)

// Execute runs the door-inspect CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", "", "maintenance API address")

	statusCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep printing the status")
	statusCmd.Flags().DurationVarP(&interval, "interval", "i", inspect.DefaultInterval, "watch polling interval")

	rootCmd.AddCommand(statusCmd, occupancyCmd)
}
