package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/calbot/pkg/log"
	"github.com/sandevgo/calbot/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the CalBot services",
	Long:  `Initializes the calendar backend and starts the configured transports (CLI, Telegram).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting calbot")

		// the CLI calls stop when the user exits
		services := NewServices(ctx, stop)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		if err := srv.ShutdownServices(ctx, services); err != nil {
			logger.Error().Err(err).Msg("shutdown finished with errors")
		}
		logger.Info().Msg("calbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
