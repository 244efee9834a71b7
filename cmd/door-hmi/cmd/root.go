package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/service/hmi"
	"github.com/oshokin/door-guard/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel is the minimum level written to the log file.
	logLevel string
	// options collects the overrides of the configuration file.
	options hmi.Options

	// rootCmd represents the base command for running the HMI node.
	rootCmd = &cobra.Command{
		Use:   "door-hmi",
		Short: "Run the door HMI node in the terminal.",
		Long: `Runs the HMI node of the door as a terminal panel: a 16x2 display, a lockout lamp and a keypad.

Keys: 0-9 enter digits, "=" or Enter submits five digits, "+" opens the door and "-" changes
the credential from the menu, Esc quits. On first start the panel asks for a new credential
and its confirmation, then stores it on the Control node.

Logs are written to the HMI log file because the panel owns the terminal.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options.ConfigPath = configPath

			return hmi.Run(ctx, &options)
		},
	}
)

// Execute runs the door-hmi CLI and exits with non-zero status on error.
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

	rootCmd.Flags().StringVar(&options.Device, "device", "", "serial device, overrides link.device")
	rootCmd.Flags().StringVar(&options.Address, "address", "", "Control node TCP address, overrides link.address")
	rootCmd.Flags().StringVar(&options.LogFile, "log-file", "", "log file, overrides hmi.log_file")
}
