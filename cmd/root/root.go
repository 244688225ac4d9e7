// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"github.com/C0d3N1nJ4/payment-builder/internal/config"
	"github.com/C0d3N1nJ4/payment-builder/internal/container"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	ConfigFile string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "payment-builder",
		Short: "A CLI tool to build ISO 20022 pain.013 payment activation requests from CSV files.",
		Long: `payment-builder reads delimited payment records (CSV or XLSX), normalizes
their columns through a fixed alias table and writes one pain.013.001.11
Creditor Payment Activation Request per input file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to payment-builder!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				_ = appContainer.Close()
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
	containerOpt []container.Option
	initOnce     sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (directory for batch)")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (directory for batch)")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.payment-builder, .payment-builder or .)")
		flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
		flags.String("log-format", "text", "Log format (text or json)")
		flags.String("delimiter", ",", "Input field separator")
		flags.String("policy", "strict", "Malformed line policy (strict or skip)")
	})
}

// Setup loads the configuration for cmd and wires the application container.
func Setup(cmd *cobra.Command) error {
	config.LoadEnv()

	cfg, err := config.Load(SharedFlags.ConfigFile, commandFlags(cmd))
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg, containerOpt...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	Log = c.GetLogger()
	return nil
}

// commandFlags collects the flags visible to cmd, including persistent flags of its
// parents, whether or not cobra has merged them yet.
func commandFlags(cmd *cobra.Command) *pflag.FlagSet {
	flags := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	flags.AddFlagSet(cmd.Flags())
	flags.AddFlagSet(cmd.PersistentFlags())
	flags.AddFlagSet(cmd.InheritedFlags())
	return flags
}

// SetContainerOptions sets extra options applied when the container is built.
// Tests use it to inject a mock logger or a fixed generator clock.
func SetContainerOptions(opts ...container.Option) {
	containerOpt = opts
}

// GetContainer returns the container built for the running command, or nil before Setup.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the configured logger.
func GetLogger() logging.Logger {
	return Log
}
