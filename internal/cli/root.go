// Package cli implements the casperctl commands.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/casper-db/casper-go/v1/casper"
	"github.com/casper-db/casper-go/v1/logger"
)

// version can be overridden at build time via -ldflags "-X github.com/casper-db/casper-go/internal/cli.version=1.2.3".
var version = "dev"

var (
	flagEndpoint string
	flagGRPC     string
	flagTimeout  time.Duration
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "casperctl",
	Short:         "Command line client for the Casper vector database",
	Long:          color.CyanString("casperctl") + "\nManage collections, vectors, indexes, matrices and product quantizers on a Casper server.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the casperctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

// Execute runs the root command and prints a failure in red.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), color.RedString("error (%s): %v", casper.KindOf(err), err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "HTTP endpoint (overrides CASPER_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&flagGRPC, "grpc", "", "gRPC address (overrides CASPER_GRPC_ADDRESS)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "HTTP request timeout (overrides CASPER_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", logger.Error, "log level: debug, info, warning, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(vectorCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(pqCmd)
}

// withClient builds a client from the environment and flags, runs fn and closes it.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *casper.Client) error) error {
	cfg, err := casper.NewConfigFromEnv()
	if err != nil {
		return err
	}
	if flagEndpoint != "" {
		cfg.WithEndpoint(flagEndpoint)
	}
	if flagGRPC != "" {
		cfg.WithGRPCAddress(flagGRPC)
	}
	if flagTimeout > 0 {
		cfg.WithTimeout(flagTimeout)
	}

	log, err := logger.NewLoggerClient(logger.Config{Level: flagLogLevel, ServiceName: "casperctl"})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Zap.Sync() }()
	cfg.WithLogger(log)

	client, err := casper.NewClient(*cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	return fn(cmd.Context(), client)
}

func success(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(format, args...))
}
