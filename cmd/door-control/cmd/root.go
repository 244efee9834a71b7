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
	"github.com/oshokin/door-guard/internal/service/control"
	"github.com/oshokin/door-guard/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel is the minimum level written to stderr.
	logLevel string
	// options collects the overrides of the configuration file.
	options control.Options

	// rootCmd represents the base command for running the Control node.
	rootCmd = &cobra.Command{
		Use:   "door-control",
		Short: "Run the door Control node.",
		Long: `Runs the Control node of the door: credential verification, the door cycle and the alarm lockout.

The node talks to the HMI node over the serial link from the configuration file, or over TCP
for bench setups where it waits for exactly one HMI connection. The credential is kept in a
small storage image on disk. With the "sim" hardware backend every signal is simulated in
memory; the "gpio" backend drives real pins through periph.io.

When a maintenance address is configured, the node also serves the maintenance gRPC API
used by door-inspect.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return applyLogLevel(logLevel)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options.ConfigPath = configPath

			return control.Run(ctx, &options)
		},
	}
)

// Execute runs the door-control CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyLogLevel(value string) error {
	level, ok := logger.ParseLogLevel(value)
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}

	logger.SetLevel(level)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")

	rootCmd.Flags().StringVar(&options.Device, "device", "", "serial device, overrides link.device")
	rootCmd.Flags().StringVar(&options.Address, "address", "", "TCP link listen address, overrides link.address")
	rootCmd.Flags().StringVarP(&options.StorageFile, "storage-file", "s", "", "credential store image")
	rootCmd.Flags().StringVar(&options.Hardware, "hardware", "", "hardware backend: sim or gpio")
	rootCmd.Flags().StringVarP(&options.MaintenanceAddress, "maintenance-addr", "m", "",
		"maintenance API listen address")
}
