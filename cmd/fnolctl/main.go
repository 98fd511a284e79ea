package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fnol_intake/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "fnolctl",
	Short: "Operator tools for the FNOL claim intake service",
	Long: `fnolctl seeds demo accounts into the configured store and renders
certificates of insurance offline, without going through the HTTP API.`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(certificateCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging(cmd *cobra.Command, _ []string) error {
	viper.AutomaticEnv()
	level := logger.ParseLevel(viper.GetString("logging.level"))
	logger.SetDefault(logger.NewFromConfig(logger.Config{Level: level}).WithOutput(cmd.ErrOrStderr()))
	return nil
}
